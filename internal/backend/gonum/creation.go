package gonum

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/tensornet/internal/tensor"
)

// ConvertToTensor wraps Go values and gonum matrices as tensors.
//
// Accepted values: *tensor.RawTensor (returned as is), scalars
// (float64, float32, int, int64, complex128, complex64, bool), slices
// ([]float64, []float32, []int, []complex128, []bool), [][]float64 and
// gonum's mat.Vector and mat.Matrix.
func (b *Backend) ConvertToTensor(value any) (*tensor.RawTensor, error) {
	const op = "convert_to_tensor"

	switch v := value.(type) {
	case *tensor.RawTensor:
		if v == nil {
			return nil, tensor.Argumentf(op, "nil tensor")
		}
		return v, nil
	case float64:
		return tensor.Scalar(v, tensor.Float64), nil
	case float32:
		return tensor.Scalar(float64(v), tensor.Float32), nil
	case int:
		return tensor.FromInts(tensor.Shape{}, []int{v})
	case int64:
		return tensor.FromInts(tensor.Shape{}, []int{int(v)})
	case complex128:
		return tensor.FromComplex128s(tensor.Shape{}, tensor.Complex128, []complex128{v})
	case complex64:
		return tensor.FromComplex128s(tensor.Shape{}, tensor.Complex64, []complex128{complex128(v)})
	case bool:
		return tensor.FromBools(tensor.Shape{}, []bool{v})
	case []float64:
		return tensor.FromFloat64s(tensor.Shape{len(v)}, tensor.Float64, v)
	case []float32:
		vals := make([]float64, len(v))
		for i, x := range v {
			vals[i] = float64(x)
		}
		return tensor.FromFloat64s(tensor.Shape{len(v)}, tensor.Float32, vals)
	case []int:
		return tensor.FromInts(tensor.Shape{len(v)}, v)
	case []complex128:
		return tensor.FromComplex128s(tensor.Shape{len(v)}, tensor.Complex128, v)
	case []bool:
		return tensor.FromBools(tensor.Shape{len(v)}, v)
	case [][]float64:
		return fromRows(op, v)
	case mat.Vector:
		n := v.Len()
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = v.AtVec(i)
		}
		return tensor.FromFloat64s(tensor.Shape{n}, tensor.Float64, vals)
	case mat.Matrix:
		r, c := v.Dims()
		return tensor.FromFloat64s(tensor.Shape{r, c}, tensor.Float64, mat.DenseCopyOf(v).RawMatrix().Data)
	default:
		return nil, tensor.Argumentf(op, "cannot convert %T to a tensor", value)
	}
}

func fromRows(op string, rows [][]float64) (*tensor.RawTensor, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	vals := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, tensor.Argumentf(op, "row %d has %d entries, expected %d", i, len(row), cols)
		}
		vals = append(vals, row...)
	}
	return tensor.FromFloat64s(tensor.Shape{len(rows), cols}, tensor.Float64, vals)
}

func validShape(op string, shape tensor.Shape) error {
	if err := shape.Validate(); err != nil {
		return tensor.Argumentf(op, "%v", err)
	}
	return nil
}

// Eye returns an n x m identity matrix. m <= 0 means m = n.
func (b *Backend) Eye(n int, dtype tensor.DataType, m int) (*tensor.RawTensor, error) {
	if m <= 0 {
		m = n
	}
	if err := validShape("eye", tensor.Shape{n, m}); err != nil {
		return nil, err
	}
	vals := make([]float64, n*m)
	for i := 0; i < min(n, m); i++ {
		vals[i*m+i] = 1
	}
	return tensor.FromFloat64s(tensor.Shape{n, m}, dtype.OrDefault(), vals)
}

// Ones returns a tensor filled with ones.
func (b *Backend) Ones(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if err := validShape("ones", shape); err != nil {
		return nil, err
	}
	vals := make([]float64, shape.NumElements())
	for i := range vals {
		vals[i] = 1
	}
	return tensor.FromFloat64s(shape, dtype.OrDefault(), vals)
}

// Zeros returns a tensor filled with zeros.
func (b *Backend) Zeros(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if err := validShape("zeros", shape); err != nil {
		return nil, err
	}
	return tensor.NewRaw(shape, dtype.OrDefault())
}

// NewSource returns a seeded PCG source for Randn and RandomUniform.
// Each caller should own its source; sources are not safe for concurrent use.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

// Randn draws from the standard normal distribution using src. Complex
// dtypes draw all real parts, then all imaginary parts.
func (b *Backend) Randn(shape tensor.Shape, dtype tensor.DataType, src rand.Source) (*tensor.RawTensor, error) {
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	return b.random("randn", shape, dtype, src, dist.Rand)
}

// RandomUniform draws uniformly from [boundaries[0], boundaries[1]) using
// src. Complex dtypes draw real and imaginary parts independently.
func (b *Backend) RandomUniform(shape tensor.Shape, boundaries [2]float64, dtype tensor.DataType, src rand.Source) (*tensor.RawTensor, error) {
	if boundaries[0] > boundaries[1] {
		return nil, tensor.Argumentf("random_uniform", "lower boundary %v exceeds upper boundary %v", boundaries[0], boundaries[1])
	}
	dist := distuv.Uniform{Min: boundaries[0], Max: boundaries[1], Src: src}
	return b.random("random_uniform", shape, dtype, src, dist.Rand)
}

func (b *Backend) random(op string, shape tensor.Shape, dtype tensor.DataType, src rand.Source, draw func() float64) (*tensor.RawTensor, error) {
	if src == nil {
		return nil, tensor.Argumentf(op, "a random source is required")
	}
	if err := validShape(op, shape); err != nil {
		return nil, err
	}
	dtype = dtype.OrDefault()
	if !dtype.IsFloat() && !dtype.IsComplex() {
		return nil, tensor.Unsupportedf(op, dtype, b.name)
	}

	n := shape.NumElements()
	re := make([]float64, n)
	for i := range re {
		re[i] = draw()
	}
	if !dtype.IsComplex() {
		return tensor.FromFloat64s(shape, dtype, re)
	}

	vals := make([]complex128, n)
	for i := range vals {
		vals[i] = complex(re[i], draw())
	}
	return tensor.FromComplex128s(shape, dtype, vals)
}
