package gonum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/tensornet/internal/parallel"
	"github.com/born-ml/tensornet/internal/tensor"
)

// Diag builds diagonal matrices from the last axis: [..., N] -> [..., N, N].
func (b *Backend) Diag(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	if t.Rank() < 1 {
		return nil, tensor.Argumentf("diag", "input must have rank >= 1, got shape %v", t.Shape())
	}
	n := t.Shape()[t.Rank()-1]
	outShape := append(t.Shape().Clone(), n)
	result, err := tensor.NewRaw(outShape, t.DType())
	if err != nil {
		return nil, err
	}

	es := t.DType().Size()
	batches := t.NumElements()
	if n > 0 {
		batches /= n
	}
	src, dst := t.Data(), result.Data()
	parallel.For(batches, b.par, func(batch int) {
		for i := 0; i < n; i++ {
			from := (batch*n + i) * es
			to := (batch*n*n + i*n + i) * es
			copy(dst[to:to+es], src[from:from+es])
		}
	})
	return result, nil
}

// Trace sums the diagonal of the last two axes: [..., M, N] -> [...].
func (b *Backend) Trace(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	const op = "trace"

	if t.Rank() < 2 {
		return nil, tensor.Argumentf(op, "input must have rank >= 2, got shape %v", t.Shape())
	}
	dtype := t.DType()
	if !dtype.IsNumeric() {
		return nil, tensor.Unsupportedf(op, dtype, b.name)
	}

	rank := t.Rank()
	rows, cols := t.Shape()[rank-2], t.Shape()[rank-1]
	outShape := t.Shape()[:rank-2].Clone()
	batches := outShape.NumElements()
	diag := min(rows, cols)

	if dtype.IsComplex() {
		vals := t.Complex128s()
		out := make([]complex128, batches)
		parallel.For(batches, b.par, func(batch int) {
			for i := 0; i < diag; i++ {
				out[batch] += vals[batch*rows*cols+i*cols+i]
			}
		})
		return tensor.FromComplex128s(outShape, dtype, out)
	}

	vals, _ := t.Float64s()
	out := make([]float64, batches)
	parallel.For(batches, b.par, func(batch int) {
		for i := 0; i < diag; i++ {
			out[batch] += vals[batch*rows*cols+i*cols+i]
		}
	})
	return tensor.FromFloat64s(outShape, dtype, out)
}

// Norm returns the Frobenius norm of all entries as a real rank-0 tensor.
func (b *Backend) Norm(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	dtype := t.DType()
	switch {
	case dtype.IsComplex():
		return tensor.Scalar(cmplxs.Norm(t.Complex128s(), 2), dtype.Real()), nil
	case dtype.IsFloat():
		vals, _ := t.Float64s()
		return tensor.Scalar(floats.Norm(vals, 2), dtype), nil
	default:
		return nil, tensor.Unsupportedf("norm", dtype, b.name)
	}
}

// squareMatrix checks that t is an N x N matrix.
func squareMatrix(op string, t *tensor.RawTensor) (int, error) {
	if t.Rank() != 2 {
		return 0, tensor.Argumentf(op, "input has shape %v. Only matrices are supported", t.Shape())
	}
	rows, cols := t.Shape()[0], t.Shape()[1]
	if rows != cols {
		return 0, tensor.Argumentf(op, "only N*N matrices are supported, %d*%d matrix is given", rows, cols)
	}
	return rows, nil
}

// realMatrix returns the gonum matrix of a real tensor, or the real
// embedding [[X, -Y], [Y, X]] of a complex one.
func realMatrix(t *tensor.RawTensor, n int) *mat.Dense {
	if !t.DType().IsComplex() {
		vals, _ := t.Float64s()
		return mat.NewDense(n, n, vals)
	}
	m := mat.NewDense(2*n, 2*n, nil)
	vals := t.Complex128s()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			re, im := real(vals[i*n+j]), imag(vals[i*n+j])
			m.Set(i, j, re)
			m.Set(i+n, j+n, re)
			m.Set(i, j+n, -im)
			m.Set(i+n, j, im)
		}
	}
	return m
}

// fromRealMatrix inverts realMatrix for results that preserve the
// embedding structure (inverses and exponentials do).
func fromRealMatrix(m *mat.Dense, n int, dtype tensor.DataType) (*tensor.RawTensor, error) {
	shape := tensor.Shape{n, n}
	if !dtype.IsComplex() {
		return tensor.FromFloat64s(shape, dtype, mat.DenseCopyOf(m).RawMatrix().Data)
	}
	vals := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vals[i*n+j] = complex(m.At(i, j), m.At(i+n, j))
		}
	}
	return tensor.FromComplex128s(shape, dtype, vals)
}

func inexact(dtype tensor.DataType) bool {
	return dtype.IsFloat() || dtype.IsComplex()
}

// Inv computes the inverse of a square matrix.
func (b *Backend) Inv(matrix *tensor.RawTensor) (*tensor.RawTensor, error) {
	const op = "inv"

	n, err := squareMatrix(op, matrix)
	if err != nil {
		return nil, err
	}
	if !inexact(matrix.DType()) {
		return nil, tensor.Unsupportedf(op, matrix.DType(), b.name)
	}
	if n == 0 {
		return matrix.Clone(), nil
	}

	var inv mat.Dense
	if err := inv.Inverse(realMatrix(matrix, n)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%s: %w: %v", op, tensor.ErrSingular, err)
		}
		// Finite condition numbers still produce an inverse.
		b.log.Warn("inverse of ill-conditioned matrix", "condition", float64(cond))
	}
	return fromRealMatrix(&inv, n, matrix.DType())
}

// Expm computes the matrix exponential of a square matrix.
func (b *Backend) Expm(matrix *tensor.RawTensor) (*tensor.RawTensor, error) {
	const op = "expm"

	n, err := squareMatrix(op, matrix)
	if err != nil {
		return nil, err
	}
	if !inexact(matrix.DType()) {
		return nil, tensor.Unsupportedf(op, matrix.DType(), b.name)
	}
	if n == 0 {
		return matrix.Clone(), nil
	}

	var e mat.Dense
	e.Exp(realMatrix(matrix, n))
	return fromRealMatrix(&e, n, matrix.DType())
}

// Eigh computes the eigenvalues (ascending) and eigenvectors (columns) of
// a real symmetric matrix. Only the lower triangle is read.
func (b *Backend) Eigh(matrix *tensor.RawTensor) (values, vectors *tensor.RawTensor, err error) {
	const op = "eigh"

	n, err := squareMatrix(op, matrix)
	if err != nil {
		return nil, nil, err
	}
	dtype := matrix.DType()
	if !dtype.IsFloat() {
		return nil, nil, tensor.Unsupportedf(op, dtype, b.name)
	}
	if n == 0 {
		if values, err = tensor.NewRaw(tensor.Shape{0}, dtype); err != nil {
			return nil, nil, err
		}
		vectors, err = tensor.NewRaw(tensor.Shape{0, 0}, dtype)
		return values, vectors, err
	}

	data, _ := matrix.Float64s()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sym.SetSym(i, j, data[i*n+j])
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("%s: eigendecomposition of %dx%d matrix did not converge", op, n, n)
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	if values, err = tensor.FromFloat64s(tensor.Shape{n}, dtype, es.Values(nil)); err != nil {
		return nil, nil, err
	}
	if vectors, err = tensor.FromFloat64s(tensor.Shape{n, n}, dtype, mat.DenseCopyOf(&vecs).RawMatrix().Data); err != nil {
		return nil, nil, err
	}
	return values, vectors, nil
}

// Eigs is not provided by this backend.
func (b *Backend) Eigs(_ tensor.LinearOperator, _ tensor.EigsOptions) (values, vectors []*tensor.RawTensor, err error) {
	return nil, nil, b.notImplemented("eigs")
}

// EigshLanczos is not provided by this backend.
func (b *Backend) EigshLanczos(_ tensor.LinearOperator, _ tensor.LanczosOptions) (values, vectors []*tensor.RawTensor, err error) {
	return nil, nil, b.notImplemented("eigsh_lanczos")
}

func (b *Backend) notImplemented(op string) error {
	b.log.Debug("operation not implemented", "op", op)
	return &tensor.NotImplementedError{Backend: b.name, Op: op}
}
