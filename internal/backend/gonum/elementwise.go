package gonum

import (
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/tensornet/internal/parallel"
	"github.com/born-ml/tensornet/internal/tensor"
)

// Addition performs element-wise addition with NumPy-style broadcasting.
func (b *Backend) Addition(x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.binary("addition", x, y, floats.Add, cmplxs.Add)
}

// Subtraction performs element-wise subtraction with broadcasting.
func (b *Backend) Subtraction(x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.binary("subtraction", x, y, floats.Sub, cmplxs.Sub)
}

// Multiply performs element-wise multiplication with broadcasting.
func (b *Backend) Multiply(x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.binary("multiply", x, y, floats.Mul, cmplxs.Mul)
}

// Divide performs element-wise division with broadcasting. Integer operands
// are divided exactly and yield a Float64 result; a zero integer divisor is
// an argument error.
func (b *Backend) Divide(x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	const op = "divide"

	if x.DType() == y.DType() && x.DType().IsInteger() {
		xs, _ := x.Float64s()
		ys, _ := y.Float64s()
		if slices.Contains(ys, 0) {
			return nil, tensor.Argumentf(op, "integer division by zero")
		}
		var err error
		if x, err = tensor.FromFloat64s(x.Shape(), tensor.Float64, xs); err != nil {
			return nil, err
		}
		if y, err = tensor.FromFloat64s(y.Shape(), tensor.Float64, ys); err != nil {
			return nil, err
		}
	}
	return b.binary(op, x, y, floats.Div, cmplxs.Div)
}

// binary broadcasts x and y to a common shape and applies the in-place
// kernel dst = dst (op) src.
func (b *Backend) binary(op string, x, y *tensor.RawTensor,
	realKernel func(dst, src []float64), cplxKernel func(dst, src []complex128),
) (*tensor.RawTensor, error) {
	if x.DType() != y.DType() {
		return nil, tensor.Argumentf(op, "dtypes differ: %s vs %s", x.DType(), y.DType())
	}
	dtype := x.DType()
	if !dtype.IsNumeric() {
		return nil, tensor.Unsupportedf(op, dtype, b.name)
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(x.Shape(), y.Shape())
	if err != nil {
		return nil, tensor.Mismatchf(op, "%v", err)
	}

	if dtype.IsComplex() {
		dst := expand(x.Complex128s(), x.Shape(), outShape, needsBroadcast)
		cplxKernel(dst, expand(y.Complex128s(), y.Shape(), outShape, needsBroadcast))
		return tensor.FromComplex128s(outShape, dtype, dst)
	}

	xs, _ := x.Float64s()
	ys, _ := y.Float64s()
	dst := expand(xs, x.Shape(), outShape, needsBroadcast)
	realKernel(dst, expand(ys, y.Shape(), outShape, needsBroadcast))
	return tensor.FromFloat64s(outShape, dtype, dst)
}

// expand materialises data of shape in at the broadcast shape out.
func expand[T any](data []T, in, out tensor.Shape, needsBroadcast bool) []T {
	if !needsBroadcast || in.Equal(out) {
		return data
	}
	idx := tensor.BroadcastIndex(in, out)
	result := make([]T, len(idx))
	for i, j := range idx {
		result[i] = data[j]
	}
	return result
}

// BroadcastRightMultiplication multiplies t1 by the vector t2 along t1's
// trailing axis.
func (b *Backend) BroadcastRightMultiplication(t1, t2 *tensor.RawTensor) (*tensor.RawTensor, error) {
	if t2.Rank() != 1 {
		return nil, tensor.Argumentf("broadcast_right_multiplication",
			"only order-1 tensors are allowed for tensor2, found tensor2.shape = %v", t2.Shape())
	}
	return b.Multiply(t1, t2)
}

// BroadcastLeftMultiplication multiplies t2 by the vector t1 along t2's
// leading axis.
func (b *Backend) BroadcastLeftMultiplication(t1, t2 *tensor.RawTensor) (*tensor.RawTensor, error) {
	if t1.Rank() != 1 {
		return nil, tensor.Argumentf("broadcast_left_multiplication",
			"only order-1 tensors are allowed for tensor1, found tensor1.shape = %v", t1.Shape())
	}
	shape := tensor.Shape{t1.Shape()[0]}
	for i := 1; i < t2.Rank(); i++ {
		shape = append(shape, 1)
	}
	column, err := t1.View(shape)
	if err != nil {
		return nil, tensor.Argumentf("broadcast_left_multiplication", "%v", err)
	}
	return b.Multiply(t2, column)
}

// IndexUpdate returns a copy of t where mask is true replaced by assignee.
// mask (Bool) and assignee must broadcast to t's shape.
func (b *Backend) IndexUpdate(t, mask, assignee *tensor.RawTensor) (*tensor.RawTensor, error) {
	const op = "index_update"

	if mask.DType() != tensor.Bool {
		return nil, tensor.Argumentf(op, "mask must be bool, got %s", mask.DType())
	}
	if assignee.DType() != t.DType() {
		return nil, tensor.Argumentf(op, "assignee dtype %s differs from tensor dtype %s", assignee.DType(), t.DType())
	}
	for _, operand := range []*tensor.RawTensor{mask, assignee} {
		shape, _, err := tensor.BroadcastShapes(operand.Shape(), t.Shape())
		if err != nil || !shape.Equal(t.Shape()) {
			return nil, tensor.Mismatchf(op, "shape %v does not broadcast to %v", operand.Shape(), t.Shape())
		}
	}

	result := t.Clone()
	flags := mask.AsBool()
	maskIdx := tensor.BroadcastIndex(mask.Shape(), t.Shape())
	srcIdx := tensor.BroadcastIndex(assignee.Shape(), t.Shape())
	es := t.DType().Size()
	dst, src := result.Data(), assignee.Data()
	for i := range maskIdx {
		if flags[maskIdx[i]] {
			j := srcIdx[i]
			copy(dst[i*es:(i+1)*es], src[j*es:(j+1)*es])
		}
	}
	return result, nil
}

// unary applies an element-wise function. Only floating point and complex
// tensors are accepted.
func (b *Backend) unary(op string, t *tensor.RawTensor, realFn func(float64) float64, cplxFn func(complex128) complex128) (*tensor.RawTensor, error) {
	dtype := t.DType()
	switch {
	case dtype.IsComplex():
		vals := t.Complex128s()
		parallel.Range(len(vals), b.par, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				vals[i] = cplxFn(vals[i])
			}
		})
		return tensor.FromComplex128s(t.Shape(), dtype, vals)
	case dtype.IsFloat():
		vals, _ := t.Float64s()
		parallel.Range(len(vals), b.par, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				vals[i] = realFn(vals[i])
			}
		})
		return tensor.FromFloat64s(t.Shape(), dtype, vals)
	default:
		return nil, tensor.Unsupportedf(op, dtype, b.name)
	}
}

// Sqrt computes the element-wise square root.
func (b *Backend) Sqrt(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.unary("sqrt", t, math.Sqrt, cmplx.Sqrt)
}

// Sin computes the element-wise sine.
func (b *Backend) Sin(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.unary("sin", t, math.Sin, cmplx.Sin)
}

// Cos computes the element-wise cosine.
func (b *Backend) Cos(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.unary("cos", t, math.Cos, cmplx.Cos)
}

// Exp computes the element-wise exponential.
func (b *Backend) Exp(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.unary("exp", t, math.Exp, cmplx.Exp)
}

// Log computes the element-wise natural logarithm.
func (b *Backend) Log(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	return b.unary("log", t, math.Log, cmplx.Log)
}

// Conj returns the complex conjugate. Real tensors are copied unchanged.
func (b *Backend) Conj(t *tensor.RawTensor) (*tensor.RawTensor, error) {
	if !t.DType().IsComplex() {
		if !t.DType().IsNumeric() {
			return nil, tensor.Unsupportedf("conj", t.DType(), b.name)
		}
		return t.Clone(), nil
	}
	vals := t.Complex128s()
	for i, v := range vals {
		vals[i] = cmplx.Conj(v)
	}
	return tensor.FromComplex128s(t.Shape(), t.DType(), vals)
}
