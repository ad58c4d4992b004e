// Package server exposes a tensornet backend over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/born-ml/tensornet/internal/backend/gonum"
	"github.com/born-ml/tensornet/internal/codec"
	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/tensor"
)

// Server serves backend operations as JSON endpoints.
type Server struct {
	backend tensor.Backend
	log     logger.Logger
	dtype   tensor.DataType
	seed    *uint64
}

// Option configures New.
type Option func(*Server)

// WithDefaultDType sets the dtype random endpoints use when a request
// omits one.
func WithDefaultDType(dtype tensor.DataType) Option {
	return func(s *Server) {
		s.dtype = dtype
	}
}

// WithDefaultSeed sets the seed random endpoints use when a request omits
// one. Without it every such request draws a fresh seed.
func WithDefaultSeed(seed uint64) Option {
	return func(s *Server) {
		s.seed = &seed
	}
}

// New creates a Server for backend.
func New(backend tensor.Backend, log logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{backend: backend, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/backend", s.handleBackend)

	e.POST("/v1/ops/svd", s.handleSVD)
	e.POST("/v1/ops/qr", s.handleQR)
	e.POST("/v1/ops/rq", s.handleRQ)
	e.POST("/v1/ops/inv", s.matrixFunc("inv", s.backend.Inv))
	e.POST("/v1/ops/expm", s.matrixFunc("expm", s.backend.Expm))
	e.POST("/v1/ops/norm", s.matrixFunc("norm", s.backend.Norm))
	e.POST("/v1/ops/trace", s.matrixFunc("trace", s.backend.Trace))
	e.POST("/v1/ops/eigh", s.handleEigh)
	e.POST("/v1/ops/tensordot", s.handleTensordot)
	e.POST("/v1/ops/einsum", s.handleEinsum)

	e.POST("/v1/random/randn", s.handleRandn)
	e.POST("/v1/random/uniform", s.handleUniform)
}

// Response is the body of every successful operation.
type Response struct {
	ID      string                    `json:"id"`
	Op      string                    `json:"op"`
	Tensors map[string]codec.Document `json:"tensors"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func newID() string {
	return "op_" + uuid.NewString()
}

func (s *Server) respond(c *echo.Context, op string, tensors map[string]*tensor.RawTensor) error {
	docs := make(map[string]codec.Document, len(tensors))
	for name, t := range tensors {
		docs[name] = codec.FromTensor(t)
	}
	return c.JSON(http.StatusOK, Response{ID: newID(), Op: op, Tensors: docs})
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"id":    newID(),
		"error": ErrorBody{Message: msg, Type: errType},
	})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

// fail maps backend errors onto HTTP statuses.
func (s *Server) fail(c *echo.Context, op string, err error) error {
	switch {
	case errors.Is(err, tensor.ErrNotImplemented):
		return writeError(c, http.StatusNotImplemented, "not_implemented_error", err.Error())
	case errors.Is(err, tensor.ErrArgument), errors.Is(err, tensor.ErrSingular):
		return writeBadRequest(c, err.Error())
	default:
		s.log.Error("operation failed", "op", op, "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func (s *Server) handleBackend(c *echo.Context) error {
	body := map[string]any{
		"id":   newID(),
		"name": s.backend.Name(),
	}
	if d, ok := s.backend.(interface{ Info() gonum.Info }); ok {
		body["info"] = d.Info()
	}
	return c.JSON(http.StatusOK, body)
}
