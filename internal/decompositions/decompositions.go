// Package decompositions factors tensors after flattening them into a
// matrix around a split axis. The factorizations are computed by gonum/mat;
// this package only reshapes, truncates and repackages the factors.
package decompositions

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/tensornet/internal/tensor"
)

const library = "gonum"

// split describes a tensor flattened as a left x right matrix.
type split struct {
	left, right tensor.Shape
	rows, cols  int
}

func splitAt(op string, t *tensor.RawTensor, axis int) (split, error) {
	rank := t.Rank()
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis > rank {
		return split{}, tensor.Argumentf(op, "split axis %d out of range for shape %v", axis, t.Shape())
	}
	left := t.Shape()[:axis].Clone()
	right := t.Shape()[axis:].Clone()
	return split{
		left:  left,
		right: right,
		rows:  left.NumElements(),
		cols:  right.NumElements(),
	}, nil
}

// matrixOf flattens t into a gonum matrix. It returns nil for empty matrices,
// which gonum cannot represent.
func matrixOf(op string, t *tensor.RawTensor, sp split) (*mat.Dense, error) {
	if !t.DType().IsFloat() {
		return nil, tensor.Unsupportedf(op, t.DType(), library)
	}
	if sp.rows == 0 || sp.cols == 0 {
		return nil, nil
	}
	data, err := t.Float64s()
	if err != nil {
		return nil, tensor.Unsupportedf(op, t.DType(), library)
	}
	return mat.NewDense(sp.rows, sp.cols, data), nil
}

// columns copies the first k columns of m (rows x k) into a flat slice.
func columns(m mat.Matrix, k int) []float64 {
	r, _ := m.Dims()
	out := make([]float64, 0, r*k)
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// rows copies the first k rows of m (k x c) into a flat slice.
func rows(m mat.Matrix, k int) []float64 {
	_, c := m.Dims()
	out := make([]float64, 0, k*c)
	for i := 0; i < k; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

func concat(a tensor.Shape, b ...int) tensor.Shape {
	out := make(tensor.Shape, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func prepend(k int, s tensor.Shape) tensor.Shape {
	out := make(tensor.Shape, 0, len(s)+1)
	out = append(out, k)
	return append(out, s...)
}

// SVD computes a truncated singular value decomposition of t flattened
// around splitAxis.
//
// It returns u shaped left+[k], the kept singular values s, vh shaped
// [k]+right and the discarded singular values sRest, in non-increasing order.
// k is the smaller of opts.MaxSingularValues and the number of values needed
// to keep the norm of sRest within opts.MaxTruncationError.
func SVD(t *tensor.RawTensor, splitAxis int, opts tensor.TruncationOptions) (u, s, vh, sRest *tensor.RawTensor, err error) {
	const op = "svd_decomposition"

	sp, err := splitAt(op, t, splitAxis)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	a, err := matrixOf(op, t, sp)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	dtype := t.DType()

	if a == nil {
		return emptySVD(sp, dtype)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, nil, nil, nil, fmt.Errorf("%s: factorization of %dx%d matrix did not converge", op, sp.rows, sp.cols)
	}
	values := svd.Values(nil)
	var uM, vM mat.Dense
	svd.UTo(&uM)
	svd.VTo(&vM)

	keep := NumKept(values, opts)

	if u, err = tensor.FromFloat64s(concat(sp.left, keep), dtype, columns(&uM, keep)); err != nil {
		return nil, nil, nil, nil, err
	}
	if s, err = tensor.FromFloat64s(tensor.Shape{keep}, dtype, values[:keep]); err != nil {
		return nil, nil, nil, nil, err
	}
	// vh is the adjoint of the first keep columns of v.
	if vh, err = tensor.FromFloat64s(prepend(keep, sp.right), dtype, rows(vM.T(), keep)); err != nil {
		return nil, nil, nil, nil, err
	}
	if sRest, err = tensor.FromFloat64s(tensor.Shape{len(values) - keep}, dtype, values[keep:]); err != nil {
		return nil, nil, nil, nil, err
	}
	return u, s, vh, sRest, nil
}

// NumKept returns how many of the non-increasing singular values to keep
// under opts.
func NumKept(values []float64, opts tensor.TruncationOptions) int {
	maxKeep := len(values)
	if opts.MaxSingularValues > 0 && opts.MaxSingularValues < maxKeep {
		maxKeep = opts.MaxSingularValues
	}
	if opts.MaxTruncationError == nil || len(values) == 0 {
		return maxKeep
	}

	budget := *opts.MaxTruncationError
	if opts.Relative {
		budget *= values[0]
	}

	// truncErr[i] is the norm of values[i:], which is what dropping
	// everything from i onwards costs.
	keepErr := 0
	tail := 0.0
	for i := len(values) - 1; i >= 0; i-- {
		tail += values[i] * values[i]
		if math.Sqrt(tail) > budget {
			keepErr++
		}
	}
	return min(maxKeep, keepErr)
}

func emptySVD(sp split, dtype tensor.DataType) (u, s, vh, sRest *tensor.RawTensor, err error) {
	if u, err = tensor.NewRaw(concat(sp.left, 0), dtype); err != nil {
		return nil, nil, nil, nil, err
	}
	if s, err = tensor.NewRaw(tensor.Shape{0}, dtype); err != nil {
		return nil, nil, nil, nil, err
	}
	if vh, err = tensor.NewRaw(prepend(0, sp.right), dtype); err != nil {
		return nil, nil, nil, nil, err
	}
	sRest, err = tensor.NewRaw(tensor.Shape{0}, dtype)
	return u, s, vh, sRest, err
}
