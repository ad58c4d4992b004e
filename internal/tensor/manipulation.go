package tensor

import "fmt"

// Data movement shared by backends. All routines work on raw bytes, so they
// support every dtype without per-type specialisations.

// InferShape resolves a single -1 entry so that the result holds n elements.
func InferShape(shape Shape, n int) (Shape, error) {
	out := shape.Clone()
	unknown := -1
	known := 1
	for i, d := range out {
		switch {
		case d == -1:
			if unknown >= 0 {
				return nil, fmt.Errorf("only one dimension can be -1, got %v", shape)
			}
			unknown = i
		case d < 0:
			return nil, fmt.Errorf("invalid dimension at index %d: %d", i, d)
		default:
			if d != 0 && known > MaxElements/d {
				return nil, fmt.Errorf("shape %v exceeds %d elements", shape, MaxElements)
			}
			known *= d
		}
	}
	if unknown >= 0 {
		if known == 0 || n%known != 0 {
			return nil, fmt.Errorf("cannot infer dimension of %v for %d elements", shape, n)
		}
		out[unknown] = n / known
	}
	if out.NumElements() != n {
		return nil, fmt.Errorf("incompatible shapes: %d elements cannot be viewed as %v", n, shape)
	}
	return out, nil
}

// ValidatePermutation checks that perm is a permutation of [0, rank).
func ValidatePermutation(perm []int, rank int) error {
	if len(perm) != rank {
		return fmt.Errorf("permutation length %d != rank %d", len(perm), rank)
	}
	seen := make([]bool, rank)
	for _, ax := range perm {
		if ax < 0 || ax >= rank {
			return fmt.Errorf("invalid axis %d for %dD tensor", ax, rank)
		}
		if seen[ax] {
			return fmt.Errorf("duplicate axis %d", ax)
		}
		seen[ax] = true
	}
	return nil
}

// Permute returns a copy of src with its axes reordered by perm.
// perm must already be validated.
func Permute(src *RawTensor, perm []int) *RawTensor {
	shape := src.Shape()
	ndim := len(shape)

	newShape := make(Shape, ndim)
	for i, ax := range perm {
		newShape[i] = shape[ax]
	}
	result, _ := NewRaw(newShape, src.DType())

	n := src.NumElements()
	if n == 0 {
		return result
	}

	es := src.DType().Size()
	srcStrides := src.Strides()
	// Source stride for each destination axis.
	walk := make([]int, ndim)
	for i, ax := range perm {
		walk[i] = srcStrides[ax]
	}

	dst := result.Data()
	from := src.Data()
	coords := make([]int, ndim)
	pos := 0
	for flat := 0; flat < n; flat++ {
		copy(dst[flat*es:(flat+1)*es], from[pos*es:(pos+1)*es])
		for d := ndim - 1; d >= 0; d-- {
			coords[d]++
			pos += walk[d]
			if coords[d] < newShape[d] {
				break
			}
			pos -= walk[d] * coords[d]
			coords[d] = 0
		}
	}
	return result
}

// SliceBlock copies the block starting at start with extent sizes.
// Bounds must already be validated.
func SliceBlock(src *RawTensor, start []int, sizes Shape) *RawTensor {
	result, _ := NewRaw(sizes, src.DType())
	n := sizes.NumElements()
	if n == 0 {
		return result
	}

	es := src.DType().Size()
	strides := src.Strides()
	base := 0
	for i, s := range start {
		base += s * strides[i]
	}

	dst := result.Data()
	from := src.Data()
	ndim := len(sizes)
	coords := make([]int, ndim)
	pos := base
	for flat := 0; flat < n; flat++ {
		copy(dst[flat*es:(flat+1)*es], from[pos*es:(pos+1)*es])
		for d := ndim - 1; d >= 0; d-- {
			coords[d]++
			pos += strides[d]
			if coords[d] < sizes[d] {
				break
			}
			pos -= strides[d] * coords[d]
			coords[d] = 0
		}
	}
	return result
}

// Concat joins tensors of equal dtype along axis. All other dimensions must
// agree. axis must already be normalised.
func Concat(tensors []*RawTensor, axis int) (*RawTensor, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("at least one tensor required")
	}
	first := tensors[0]
	rank := first.Rank()
	outShape := first.Shape().Clone()
	outShape[axis] = 0
	for i, t := range tensors {
		if t.DType() != first.DType() {
			return nil, fmt.Errorf("tensor %d has dtype %s, expected %s", i, t.DType(), first.DType())
		}
		if t.Rank() != rank {
			return nil, fmt.Errorf("tensor %d has rank %d, expected %d", i, t.Rank(), rank)
		}
		for d := 0; d < rank; d++ {
			if d != axis && t.Shape()[d] != first.Shape()[d] {
				return nil, fmt.Errorf("tensor %d has shape %v, incompatible with %v on axis %d", i, t.Shape(), first.Shape(), d)
			}
		}
		outShape[axis] += t.Shape()[axis]
	}

	result, err := NewRaw(outShape, first.DType())
	if err != nil {
		return nil, err
	}

	// Treat every tensor as [outer, axisDim*inner] blocks.
	es := first.DType().Size()
	outer := Shape(outShape[:axis]).NumElements()
	inner := Shape(outShape[axis+1:]).NumElements()
	dst := result.Data()
	rowBytes := outShape[axis] * inner * es
	colOffset := 0
	for _, t := range tensors {
		chunk := t.Shape()[axis] * inner * es
		src := t.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*rowBytes+colOffset:o*rowBytes+colOffset+chunk], src[o*chunk:(o+1)*chunk])
		}
		colOffset += chunk
	}
	return result, nil
}
