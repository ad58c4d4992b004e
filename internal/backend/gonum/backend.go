// Package gonum implements the tensornet Backend on top of gonum
// (gonum.org/v1/gonum).
//
// Factorizations, matrix functions and matrix products are delegated to
// gonum's mat, blas64 and cblas128 packages. This package validates
// arguments, keeps track of shapes and fills in the few tensor primitives
// gonum has no notion of (strided permutation, slicing, broadcasting).
package gonum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/tensornet/internal/logger"
	"github.com/born-ml/tensornet/internal/parallel"
	"github.com/born-ml/tensornet/internal/tensor"
)

// Name is the identifier reported by Backend.Name and used in errors.
const Name = "gonum"

// Backend implements tensor.Backend with gonum. It is immutable after New
// and safe for concurrent use.
type Backend struct {
	name string
	log  logger.Logger
	info Info
	par  parallel.Config
}

var _ tensor.Backend = (*Backend)(nil)

type options struct {
	log   logger.Logger
	probe func() error
	par   parallel.Config
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger used for diagnostics. The default discards output.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithParallel sets how element-wise and batched kernels are split across
// goroutines. The default uses every available CPU.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.par = cfg
	}
}

// WithProbe replaces the self-check New runs against the linear algebra
// kernels.
func WithProbe(probe func() error) Option {
	return func(o *options) {
		o.probe = probe
	}
}

// New creates a gonum backend.
//
// It first checks that gonum's BLAS and LAPACK implementations are usable
// (a custom implementation may have been registered with blas64.Use or
// lapack64.Use). If they are not, New returns an error matching
// tensor.ErrLibraryUnavailable and no backend.
func New(opts ...Option) (*Backend, error) {
	o := options{
		log:   logger.Nop(),
		probe: Probe,
		par:   parallel.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.probe(); err != nil {
		o.log.Warn("gonum backend unavailable", "error", err)
		return nil, fmt.Errorf("%s: %w: %v", Name, tensor.ErrLibraryUnavailable, err)
	}

	b := &Backend{
		name: Name,
		log:  o.log.With("backend", Name),
		info: detectInfo(),
		par:  o.par,
	}
	b.log.Debug("backend ready", "arch", b.info.Arch, "simd", b.info.SIMD)
	return b, nil
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return b.name
}

// Info describes the host the backend runs on.
func (b *Backend) Info() Info {
	return b.info
}

// Probe runs a matrix product and an SVD on known inputs and compares the
// results. Panics raised by a broken implementation are reported as errors.
func Probe() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()

	const tol = 1e-12

	// [[1 2] [3 4]] x I = [[1 2] [3 4]]
	c := blas64.General{Rows: 2, Cols: 2, Stride: 2, Data: make([]float64, 4)}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: 2, Cols: 2, Stride: 2, Data: []float64{1, 2, 3, 4}},
		blas64.General{Rows: 2, Cols: 2, Stride: 2, Data: []float64{1, 0, 0, 1}},
		0, c)
	for i, want := range []float64{1, 2, 3, 4} {
		if math.Abs(c.Data[i]-want) > tol {
			return fmt.Errorf("gemm returned %v", c.Data)
		}
	}

	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(2, 2, []float64{3, 0, 0, 4}), mat.SVDThin) {
		return fmt.Errorf("svd did not converge")
	}
	values := svd.Values(nil)
	if len(values) != 2 || math.Abs(values[0]-4) > tol || math.Abs(values[1]-3) > tol {
		return fmt.Errorf("svd returned singular values %v", values)
	}
	return nil
}
