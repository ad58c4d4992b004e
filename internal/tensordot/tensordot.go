// Package tensordot contracts tensors over paired axes by permuting and
// flattening them into matrices and handing the product to gonum's BLAS.
package tensordot

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"

	"github.com/born-ml/tensornet/internal/tensor"
)

const library = "gonum"

// Axes returns the pair of axis lists contracting the last n axes of a
// tensor of rank rankA with the first n axes of the other operand.
func Axes(n, rankA int) [2][]int {
	left := make([]int, n)
	right := make([]int, n)
	for i := 0; i < n; i++ {
		left[i] = rankA - n + i
		right[i] = i
	}
	return [2][]int{left, right}
}

// Tensordot contracts axes[0] of a against axes[1] of b.
//
// The result's axes are the free axes of a followed by the free axes of b,
// each in their original order. Empty axis lists give the outer product.
func Tensordot(a, b *tensor.RawTensor, axes [2][]int) (*tensor.RawTensor, error) {
	const op = "tensordot"

	if a.DType() != b.DType() {
		return nil, tensor.Argumentf(op, "dtypes differ: %s vs %s", a.DType(), b.DType())
	}
	if !a.DType().IsNumeric() {
		return nil, tensor.Unsupportedf(op, a.DType(), library)
	}
	if len(axes[0]) != len(axes[1]) {
		return nil, tensor.Argumentf(op, "axis lists have different lengths: %v vs %v", axes[0], axes[1])
	}

	contractA, err := normalizeAxes(axes[0], a.Rank())
	if err != nil {
		return nil, tensor.Argumentf(op, "axes %v for shape %v: %v", axes[0], a.Shape(), err)
	}
	contractB, err := normalizeAxes(axes[1], b.Rank())
	if err != nil {
		return nil, tensor.Argumentf(op, "axes %v for shape %v: %v", axes[1], b.Shape(), err)
	}
	for i := range contractA {
		da, db := a.Shape()[contractA[i]], b.Shape()[contractB[i]]
		if da != db {
			return nil, tensor.Mismatchf(op, "axis %d of %v has size %d but axis %d of %v has size %d",
				contractA[i], a.Shape(), da, contractB[i], b.Shape(), db)
		}
	}

	freeA := freeAxes(contractA, a.Rank())
	freeB := freeAxes(contractB, b.Rank())

	at := permuteIfNeeded(a, append(append([]int{}, freeA...), contractA...))
	bt := permuteIfNeeded(b, append(append([]int{}, contractB...), freeB...))

	outShape := make(tensor.Shape, 0, len(freeA)+len(freeB))
	m, n, k := 1, 1, 1
	for _, ax := range freeA {
		outShape = append(outShape, a.Shape()[ax])
		m *= a.Shape()[ax]
	}
	for _, ax := range freeB {
		outShape = append(outShape, b.Shape()[ax])
		n *= b.Shape()[ax]
	}
	for _, ax := range contractA {
		k *= a.Shape()[ax]
	}

	if m == 0 || n == 0 || k == 0 {
		return tensor.NewRaw(outShape, a.DType())
	}

	if a.DType().IsComplex() {
		c := cblas128.General{Rows: m, Cols: n, Stride: n, Data: make([]complex128, m*n)}
		cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1,
			cblas128.General{Rows: m, Cols: k, Stride: k, Data: at.Complex128s()},
			cblas128.General{Rows: k, Cols: n, Stride: n, Data: bt.Complex128s()},
			0, c)
		return tensor.FromComplex128s(outShape, a.DType(), c.Data)
	}

	ad, err := at.Float64s()
	if err != nil {
		return nil, tensor.Unsupportedf(op, a.DType(), library)
	}
	bd, err := bt.Float64s()
	if err != nil {
		return nil, tensor.Unsupportedf(op, b.DType(), library)
	}
	c := blas64.General{Rows: m, Cols: n, Stride: n, Data: make([]float64, m*n)}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: m, Cols: k, Stride: k, Data: ad},
		blas64.General{Rows: k, Cols: n, Stride: n, Data: bd},
		0, c)
	return tensor.FromFloat64s(outShape, a.DType(), c.Data)
}

func normalizeAxes(axes []int, rank int) ([]int, error) {
	out := make([]int, len(axes))
	seen := make(map[int]bool, len(axes))
	for i, ax := range axes {
		n, err := tensor.NormalizeAxis(ax, rank)
		if err != nil {
			return nil, err
		}
		if seen[n] {
			return nil, fmt.Errorf("duplicate axis %d", ax)
		}
		seen[n] = true
		out[i] = n
	}
	return out, nil
}

func freeAxes(contracted []int, rank int) []int {
	used := make([]bool, rank)
	for _, ax := range contracted {
		used[ax] = true
	}
	free := make([]int, 0, rank-len(contracted))
	for ax := 0; ax < rank; ax++ {
		if !used[ax] {
			free = append(free, ax)
		}
	}
	return free
}

func permuteIfNeeded(t *tensor.RawTensor, perm []int) *tensor.RawTensor {
	for i, ax := range perm {
		if i != ax {
			return tensor.Permute(t, perm)
		}
	}
	return t
}
