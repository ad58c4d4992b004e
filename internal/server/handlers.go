package server

import (
	"math/rand/v2"

	"github.com/labstack/echo/v5"

	"github.com/born-ml/tensornet/internal/backend/gonum"
	"github.com/born-ml/tensornet/internal/codec"
	"github.com/born-ml/tensornet/internal/tensor"
)

// TensorRequest carries a single operand.
type TensorRequest struct {
	Tensor codec.Document `json:"tensor"`
}

// SplitRequest carries a tensor and the axis splitting it into a matrix.
type SplitRequest struct {
	Tensor             codec.Document `json:"tensor"`
	SplitAxis          int            `json:"split_axis"`
	MaxSingularValues  int            `json:"max_singular_values,omitempty"`
	MaxTruncationError *float64       `json:"max_truncation_error,omitempty"`
	Relative           bool           `json:"relative,omitempty"`
}

// TensordotRequest carries two operands and their paired axes.
type TensordotRequest struct {
	A    codec.Document `json:"a"`
	B    codec.Document `json:"b"`
	Axes [2][]int       `json:"axes"`
}

// EinsumRequest carries an einsum expression and its operands.
type EinsumRequest struct {
	Expression string           `json:"expression"`
	Tensors    []codec.Document `json:"tensors"`
}

// RandomRequest describes a random tensor. A missing dtype or seed falls
// back to the server defaults.
type RandomRequest struct {
	Shape []int    `json:"shape"`
	DType string   `json:"dtype,omitempty"`
	Seed  *uint64  `json:"seed,omitempty"`
	Low   *float64 `json:"low,omitempty"`
	High  *float64 `json:"high,omitempty"`
}

func decodeRequest[T any](c *echo.Context) (T, error) {
	return codec.Decode[T](c.Request().Body)
}

func (s *Server) handleSVD(c *echo.Context) error {
	req, err := decodeRequest[SplitRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	t, err := req.Tensor.Tensor()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	opts := tensor.TruncationOptions{
		MaxSingularValues:  req.MaxSingularValues,
		MaxTruncationError: req.MaxTruncationError,
		Relative:           req.Relative,
	}
	u, sv, vh, rest, err := s.backend.SVDDecomposition(t, req.SplitAxis, opts)
	if err != nil {
		return s.fail(c, "svd", err)
	}
	return s.respond(c, "svd", map[string]*tensor.RawTensor{
		"u": u, "s": sv, "vh": vh, "s_rest": rest,
	})
}

func (s *Server) handleQR(c *echo.Context) error {
	req, err := decodeRequest[SplitRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	t, err := req.Tensor.Tensor()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	q, r, err := s.backend.QRDecomposition(t, req.SplitAxis)
	if err != nil {
		return s.fail(c, "qr", err)
	}
	return s.respond(c, "qr", map[string]*tensor.RawTensor{"q": q, "r": r})
}

func (s *Server) handleRQ(c *echo.Context) error {
	req, err := decodeRequest[SplitRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	t, err := req.Tensor.Tensor()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	r, q, err := s.backend.RQDecomposition(t, req.SplitAxis)
	if err != nil {
		return s.fail(c, "rq", err)
	}
	return s.respond(c, "rq", map[string]*tensor.RawTensor{"r": r, "q": q})
}

// matrixFunc serves single-operand operations with a single result.
func (s *Server) matrixFunc(op string, fn func(*tensor.RawTensor) (*tensor.RawTensor, error)) echo.HandlerFunc {
	return func(c *echo.Context) error {
		req, err := decodeRequest[TensorRequest](c)
		if err != nil {
			return writeBadRequest(c, "invalid JSON body")
		}
		t, err := req.Tensor.Tensor()
		if err != nil {
			return writeBadRequest(c, err.Error())
		}
		result, err := fn(t)
		if err != nil {
			return s.fail(c, op, err)
		}
		return s.respond(c, op, map[string]*tensor.RawTensor{"result": result})
	}
}

func (s *Server) handleEigh(c *echo.Context) error {
	req, err := decodeRequest[TensorRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	t, err := req.Tensor.Tensor()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	values, vectors, err := s.backend.Eigh(t)
	if err != nil {
		return s.fail(c, "eigh", err)
	}
	return s.respond(c, "eigh", map[string]*tensor.RawTensor{"values": values, "vectors": vectors})
}

func (s *Server) handleTensordot(c *echo.Context) error {
	req, err := decodeRequest[TensordotRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	a, err := req.A.Tensor()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	b, err := req.B.Tensor()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	result, err := s.backend.Tensordot(a, b, req.Axes)
	if err != nil {
		return s.fail(c, "tensordot", err)
	}
	return s.respond(c, "tensordot", map[string]*tensor.RawTensor{"result": result})
}

func (s *Server) handleEinsum(c *echo.Context) error {
	req, err := decodeRequest[EinsumRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	if req.Expression == "" {
		return writeBadRequest(c, "expression is required")
	}
	operands := make([]*tensor.RawTensor, len(req.Tensors))
	for i, doc := range req.Tensors {
		if operands[i], err = doc.Tensor(); err != nil {
			return writeBadRequest(c, err.Error())
		}
	}
	result, err := s.backend.Einsum(req.Expression, operands...)
	if err != nil {
		return s.fail(c, "einsum", err)
	}
	return s.respond(c, "einsum", map[string]*tensor.RawTensor{"result": result})
}

func (s *Server) source(req RandomRequest) rand.Source {
	switch {
	case req.Seed != nil:
		return gonum.NewSource(*req.Seed)
	case s.seed != nil:
		return gonum.NewSource(*s.seed)
	default:
		return gonum.NewSource(rand.Uint64())
	}
}

func (s *Server) dtypeOf(req RandomRequest) (tensor.DataType, error) {
	if req.DType == "" {
		return s.dtype, nil
	}
	return tensor.ParseDataType(req.DType)
}

func (s *Server) handleRandn(c *echo.Context) error {
	req, err := decodeRequest[RandomRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	dtype, err := s.dtypeOf(req)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	result, err := s.backend.Randn(req.Shape, dtype, s.source(req))
	if err != nil {
		return s.fail(c, "randn", err)
	}
	return s.respond(c, "randn", map[string]*tensor.RawTensor{"result": result})
}

func (s *Server) handleUniform(c *echo.Context) error {
	req, err := decodeRequest[RandomRequest](c)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body")
	}
	dtype, err := s.dtypeOf(req)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	bounds := [2]float64{0, 1}
	if req.Low != nil {
		bounds[0] = *req.Low
	}
	if req.High != nil {
		bounds[1] = *req.High
	}
	result, err := s.backend.RandomUniform(req.Shape, bounds, dtype, s.source(req))
	if err != nil {
		return s.fail(c, "random_uniform", err)
	}
	return s.respond(c, "random_uniform", map[string]*tensor.RawTensor{"result": result})
}
