package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat64s_AllRealDTypes(t *testing.T) {
	vals := []float64{0, 1, 2, 3}
	for _, dt := range []DataType{Float32, Float64, Int32, Int64} {
		t.Run(dt.String(), func(t *testing.T) {
			raw, err := FromFloat64s(Shape{2, 2}, dt, vals)
			require.NoError(t, err)
			got, err := raw.Float64s()
			require.NoError(t, err)
			assert.Equal(t, vals, got)
		})
	}
}

func TestFromFloat64s_Bool(t *testing.T) {
	raw, err := FromFloat64s(Shape{3}, Bool, []float64{0, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, raw.AsBool())

	got, err := raw.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1}, got)
}

func TestFromFloat64s_LengthMismatch(t *testing.T) {
	_, err := FromFloat64s(Shape{2, 2}, Float64, []float64{1, 2, 3})
	assert.Error(t, err)
}

func TestFloat64s_RejectsComplex(t *testing.T) {
	raw, err := NewRaw(Shape{1}, Complex128)
	require.NoError(t, err)
	_, err = raw.Float64s()
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestComplex128s(t *testing.T) {
	vals := []complex128{1 + 2i, -3i}
	for _, dt := range []DataType{Complex64, Complex128} {
		raw, err := FromComplex128s(Shape{2}, dt, vals)
		require.NoError(t, err)
		assert.Equal(t, vals, raw.Complex128s())
	}

	re, err := FromFloat64s(Shape{2}, Float64, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, 2}, re.Complex128s())
}

func TestFromComplex128s_RealTargetKeepsRealPart(t *testing.T) {
	raw, err := FromComplex128s(Shape{2}, Float64, []complex128{1 + 5i, 2 - 1i})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, raw.AsFloat64())
}

func TestFromInts(t *testing.T) {
	raw, err := FromInts(Shape{3}, []int{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, Int64, raw.DType())
	assert.Equal(t, []int64{4, 5, 6}, raw.AsInt64())
}

func TestFromBools(t *testing.T) {
	raw, err := FromBools(Shape{2}, []bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, Bool, raw.DType())
	assert.Equal(t, []bool{true, false}, raw.AsBool())
}

func TestScalar(t *testing.T) {
	s := Scalar(2.5, Float32)
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, []float32{2.5}, s.AsFloat32())
}
