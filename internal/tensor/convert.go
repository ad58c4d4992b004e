package tensor

import "fmt"

// Float64s returns a copy of the tensor's elements widened to float64.
// Booleans become 0 or 1. Complex tensors are rejected; use Complex128s.
func (r *RawTensor) Float64s() ([]float64, error) {
	out := make([]float64, r.NumElements())
	switch r.dtype {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, r.AsFloat64())
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range r.AsInt64() {
			out[i] = float64(v)
		}
	case Bool:
		for i, v := range r.AsBool() {
			if v {
				out[i] = 1
			}
		}
	default:
		return nil, fmt.Errorf("%w: cannot read %s as float64", ErrUnsupportedDType, r.dtype)
	}
	return out, nil
}

// Complex128s returns a copy of the tensor's elements widened to complex128.
func (r *RawTensor) Complex128s() []complex128 {
	out := make([]complex128, r.NumElements())
	switch r.dtype {
	case Complex64:
		for i, v := range r.AsComplex64() {
			out[i] = complex128(v)
		}
	case Complex128:
		copy(out, r.AsComplex128())
	default:
		// Every remaining dtype is real and readable by Float64s.
		re, _ := r.Float64s()
		for i, v := range re {
			out[i] = complex(v, 0)
		}
	}
	return out
}

// SetFloat64s stores vals into the tensor, narrowing to its dtype.
// Complex tensors receive a zero imaginary part.
func (r *RawTensor) SetFloat64s(vals []float64) {
	if len(vals) != r.NumElements() {
		panic(fmt.Sprintf("SetFloat64s: got %d values for %d elements", len(vals), r.NumElements()))
	}
	switch r.dtype {
	case Float32:
		dst := r.AsFloat32()
		for i, v := range vals {
			dst[i] = float32(v)
		}
	case Float64:
		copy(r.AsFloat64(), vals)
	case Complex64:
		dst := r.AsComplex64()
		for i, v := range vals {
			dst[i] = complex(float32(v), 0)
		}
	case Complex128:
		dst := r.AsComplex128()
		for i, v := range vals {
			dst[i] = complex(v, 0)
		}
	case Int32:
		dst := r.AsInt32()
		for i, v := range vals {
			dst[i] = int32(v)
		}
	case Int64:
		dst := r.AsInt64()
		for i, v := range vals {
			dst[i] = int64(v)
		}
	case Bool:
		dst := r.AsBool()
		for i, v := range vals {
			dst[i] = v != 0
		}
	}
}

// SetComplex128s stores vals into a complex tensor, narrowing to its dtype.
// Real tensors keep only the real part.
func (r *RawTensor) SetComplex128s(vals []complex128) {
	if len(vals) != r.NumElements() {
		panic(fmt.Sprintf("SetComplex128s: got %d values for %d elements", len(vals), r.NumElements()))
	}
	switch r.dtype {
	case Complex64:
		dst := r.AsComplex64()
		for i, v := range vals {
			dst[i] = complex64(v)
		}
	case Complex128:
		copy(r.AsComplex128(), vals)
	default:
		re := make([]float64, len(vals))
		for i, v := range vals {
			re[i] = real(v)
		}
		r.SetFloat64s(re)
	}
}

// FromFloat64s creates a tensor of the given shape and dtype from real values.
func FromFloat64s(shape Shape, dtype DataType, vals []float64) (*RawTensor, error) {
	if shape.NumElements() != len(vals) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(vals))
	}
	r, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	r.SetFloat64s(vals)
	return r, nil
}

// FromComplex128s creates a tensor of the given shape and dtype from complex values.
func FromComplex128s(shape Shape, dtype DataType, vals []complex128) (*RawTensor, error) {
	if shape.NumElements() != len(vals) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(vals))
	}
	r, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	r.SetComplex128s(vals)
	return r, nil
}

// FromInts creates an Int64 tensor, typically a shape tensor.
func FromInts(shape Shape, vals []int) (*RawTensor, error) {
	if shape.NumElements() != len(vals) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(vals))
	}
	r, err := NewRaw(shape, Int64)
	if err != nil {
		return nil, err
	}
	dst := r.AsInt64()
	for i, v := range vals {
		dst[i] = int64(v)
	}
	return r, nil
}

// FromBools creates a Bool tensor, typically a mask.
func FromBools(shape Shape, vals []bool) (*RawTensor, error) {
	if shape.NumElements() != len(vals) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(vals))
	}
	r, err := NewRaw(shape, Bool)
	if err != nil {
		return nil, err
	}
	copy(r.AsBool(), vals)
	return r, nil
}

// Scalar creates a rank-0 tensor holding v.
func Scalar(v float64, dtype DataType) *RawTensor {
	r, _ := FromFloat64s(Shape{}, dtype, []float64{v})
	return r
}
