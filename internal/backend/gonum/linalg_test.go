package gonum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensornet/internal/tensor"
)

func TestDiag(t *testing.T) {
	b := newBackend(t)

	out, err := b.Diag(floats64(t, tensor.Shape{2}, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float64{1, 0, 0, 2}, out.AsFloat64())

	batched, err := b.Diag(floats64(t, tensor.Shape{2, 2}, 1, 2, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 2}, batched.Shape())
	assert.Equal(t, []float64{1, 0, 0, 2, 3, 0, 0, 4}, batched.AsFloat64())

	_, err = b.Diag(tensor.Scalar(1, tensor.Float64))
	assert.ErrorIs(t, err, tensor.ErrArgument)
}

func TestTrace(t *testing.T) {
	b := newBackend(t)

	out, err := b.Trace(floats64(t, tensor.Shape{2, 2}, 1, 2, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rank())
	assert.Equal(t, []float64{5}, out.AsFloat64())

	batched, err := b.Trace(floats64(t, tensor.Shape{2, 2, 2}, 1, 2, 3, 4, 5, 6, 7, 8))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 13}, batched.AsFloat64())

	_, err = b.Trace(floats64(t, tensor.Shape{2}, 1, 2))
	assert.ErrorIs(t, err, tensor.ErrArgument)
}

func TestNorm(t *testing.T) {
	b := newBackend(t)

	out, err := b.Norm(floats64(t, tensor.Shape{2}, 3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 5, out.AsFloat64()[0], 1e-12)

	c, err := tensor.FromComplex128s(tensor.Shape{2}, tensor.Complex128, []complex128{3i, 4})
	require.NoError(t, err)
	out, err = b.Norm(c)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, out.DType())
	assert.InDelta(t, 5, out.AsFloat64()[0], 1e-12)
}

func TestInv(t *testing.T) {
	b := newBackend(t)
	m := floats64(t, tensor.Shape{2, 2}, 4, 7, 2, 6)

	inv, err := b.Inv(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.6, -0.7, -0.2, 0.4}, inv.AsFloat64(), 1e-12)

	prod, err := b.Tensordot(inv, m, [2][]int{{1}, {0}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, prod.AsFloat64(), 1e-12)
}

func TestInv_Complex(t *testing.T) {
	b := newBackend(t)
	m, err := tensor.FromComplex128s(tensor.Shape{2, 2}, tensor.Complex128, []complex128{1i, 0, 0, 2})
	require.NoError(t, err)

	inv, err := b.Inv(m)
	require.NoError(t, err)
	got := inv.Complex128s()
	want := []complex128{-1i, 0, 0, 0.5}
	for i := range want {
		assert.InDelta(t, real(want[i]), real(got[i]), 1e-12)
		assert.InDelta(t, imag(want[i]), imag(got[i]), 1e-12)
	}
}

func TestInv_Errors(t *testing.T) {
	b := newBackend(t)

	_, err := b.Inv(floats64(t, tensor.Shape{2, 2, 2}, make([]float64, 8)...))
	assert.ErrorIs(t, err, tensor.ErrArgument)
	assert.Contains(t, err.Error(), "Only matrices are supported")

	_, err = b.Inv(floats64(t, tensor.Shape{2, 3}, make([]float64, 6)...))
	assert.ErrorIs(t, err, tensor.ErrArgument)
	assert.Contains(t, err.Error(), "only N*N matrices are supported, 2*3 matrix is given")

	_, err = b.Inv(floats64(t, tensor.Shape{2, 2}, 1, 2, 2, 4))
	assert.ErrorIs(t, err, tensor.ErrSingular)
}

func TestExpm(t *testing.T) {
	b := newBackend(t)

	zero, err := b.Expm(floats64(t, tensor.Shape{2, 2}, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, zero.AsFloat64(), 1e-12)

	diag, err := b.Expm(floats64(t, tensor.Shape{2, 2}, 1, 0, 0, 2))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{math.E, 0, 0, math.Exp(2)}, diag.AsFloat64(), 1e-9)

	_, err = b.Expm(floats64(t, tensor.Shape{3}, 1, 2, 3))
	assert.ErrorIs(t, err, tensor.ErrArgument)
	_, err = b.Expm(floats64(t, tensor.Shape{1, 2}, 1, 2))
	assert.ErrorIs(t, err, tensor.ErrArgument)
}

func TestExpm_Complex(t *testing.T) {
	b := newBackend(t)
	// exp(i*pi/2) = i.
	m, err := tensor.FromComplex128s(tensor.Shape{1, 1}, tensor.Complex128, []complex128{complex(0, math.Pi/2)})
	require.NoError(t, err)

	out, err := b.Expm(m)
	require.NoError(t, err)
	got := out.Complex128s()[0]
	assert.InDelta(t, 0, real(got), 1e-9)
	assert.InDelta(t, 1, imag(got), 1e-9)
}

func TestEigh(t *testing.T) {
	b := newBackend(t)
	m := floats64(t, tensor.Shape{2, 2}, 2, 1, 1, 2)

	values, vectors, err := b.Eigh(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 3}, values.AsFloat64(), 1e-12)
	require.Equal(t, tensor.Shape{2, 2}, vectors.Shape())

	// m v = lambda v for every column.
	mv, err := b.Tensordot(m, vectors, [2][]int{{1}, {0}})
	require.NoError(t, err)
	v, got := vectors.AsFloat64(), mv.AsFloat64()
	for col, lambda := range values.AsFloat64() {
		for row := 0; row < 2; row++ {
			assert.InDelta(t, lambda*v[row*2+col], got[row*2+col], 1e-12)
		}
	}

	c, err := tensor.FromComplex128s(tensor.Shape{1, 1}, tensor.Complex128, []complex128{1})
	require.NoError(t, err)
	_, _, err = b.Eigh(c)
	assert.ErrorIs(t, err, tensor.ErrUnsupportedDType)
}
