package gonum

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/tensornet/internal/tensor"
)

// Reshape returns a view of t with a new shape. One dimension may be -1.
func (b *Backend) Reshape(t *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	resolved, err := tensor.InferShape(shape, t.NumElements())
	if err != nil {
		return nil, tensor.Argumentf("reshape", "%v -> %v: %v", t.Shape(), shape, err)
	}
	return t.View(resolved)
}

// Transpose permutes the axes of t. Without perm the axes are reversed.
func (b *Backend) Transpose(t *tensor.RawTensor, perm ...int) (*tensor.RawTensor, error) {
	ndim := t.Rank()
	if len(perm) == 0 {
		perm = make([]int, ndim)
		for i := range perm {
			perm[i] = ndim - 1 - i
		}
	}
	if err := tensor.ValidatePermutation(perm, ndim); err != nil {
		return nil, tensor.Argumentf("transpose", "perm %v for shape %v: %v", perm, t.Shape(), err)
	}
	return tensor.Permute(t, perm), nil
}

// Slice extracts the block of t starting at startIndices with extent
// sliceSizes. A size of -1 extends the block to the end of that axis.
func (b *Backend) Slice(t *tensor.RawTensor, startIndices, sliceSizes []int) (*tensor.RawTensor, error) {
	const op = "slice"

	if len(startIndices) != len(sliceSizes) {
		return nil, tensor.Argumentf(op, "lengths of start indices (%d) and slice sizes (%d) must be identical",
			len(startIndices), len(sliceSizes))
	}
	if len(startIndices) != t.Rank() {
		return nil, tensor.Argumentf(op, "got %d start indices for shape %v", len(startIndices), t.Shape())
	}

	sizes := make(tensor.Shape, len(sliceSizes))
	for i, dim := range t.Shape() {
		start, size := startIndices[i], sliceSizes[i]
		if start < 0 || start > dim {
			return nil, tensor.Argumentf(op, "block start %v out of range for shape %v on axis %d",
				startIndices, t.Shape(), i)
		}
		if size == -1 {
			size = dim - start
		}
		if size < 0 || size > dim-start {
			return nil, tensor.Argumentf(op, "block start %v size %v exceeds shape %v on axis %d",
				startIndices, sliceSizes, t.Shape(), i)
		}
		sizes[i] = size
	}
	return tensor.SliceBlock(t, startIndices, sizes), nil
}

// ShapeConcat concatenates values along axis.
func (b *Backend) ShapeConcat(values []*tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	const op = "shape_concat"

	if len(values) == 0 {
		return nil, tensor.Argumentf(op, "at least one tensor required")
	}
	ax, err := tensor.NormalizeAxis(axis, values[0].Rank())
	if err != nil {
		return nil, tensor.Argumentf(op, "%v", err)
	}
	out, err := tensor.Concat(values, ax)
	if err != nil {
		return nil, tensor.Mismatchf(op, "%v", err)
	}
	return out, nil
}

// ShapeTensor returns the dimensions of t as an Int64 vector.
func (b *Backend) ShapeTensor(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	return tensor.FromInts(tensor.Shape{t.Rank()}, t.Shape())
}

// ShapeTuple returns a copy of the dimensions of t.
func (b *Backend) ShapeTuple(t *tensor.RawTensor) []int {
	return t.Shape().Clone()
}

// SparseShape is ShapeTuple; dense tensors have no separate sparse shape.
func (b *Backend) SparseShape(t *tensor.RawTensor) []int {
	return b.ShapeTuple(t)
}

// ShapeProd multiplies all entries of values into a rank-0 tensor.
func (b *Backend) ShapeProd(values *tensor.RawTensor) (*tensor.RawTensor, error) {
	dtype := values.DType()
	if !dtype.IsNumeric() {
		return nil, tensor.Unsupportedf("shape_prod", dtype, b.name)
	}
	if dtype.IsComplex() {
		prod := complex(1, 0)
		for _, v := range values.Complex128s() {
			prod *= v
		}
		return tensor.FromComplex128s(tensor.Shape{}, dtype, []complex128{prod})
	}
	data, _ := values.Float64s()
	return tensor.FromFloat64s(tensor.Shape{}, dtype, []float64{floats.Prod(data)})
}
