package gonum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensornet/internal/tensor"
)

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New()
	require.NoError(t, err)
	return b
}

func floats64(t *testing.T, shape tensor.Shape, vals ...float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromFloat64s(shape, tensor.Float64, vals)
	require.NoError(t, err)
	return raw
}

func TestNew(t *testing.T) {
	b := newBackend(t)
	assert.Equal(t, "gonum", b.Name())
	assert.Equal(t, "gonum", b.Info().Name)
	assert.NotEmpty(t, b.Info().Arch)
	assert.NotNil(t, b.Info().SIMD)
}

func TestNew_ProbeFailure(t *testing.T) {
	b, err := New(WithProbe(func() error { return errors.New("lapack missing") }))
	assert.Nil(t, b)
	assert.ErrorIs(t, err, tensor.ErrLibraryUnavailable)
	assert.Contains(t, err.Error(), "lapack missing")
}

func TestProbe(t *testing.T) {
	assert.NoError(t, Probe())
}

func TestNotImplemented(t *testing.T) {
	b := newBackend(t)

	_, _, err := b.Eigs(nil, tensor.EigsOptions{})
	assert.ErrorIs(t, err, tensor.ErrNotImplemented)
	assert.EqualError(t, err, "backend 'gonum' has not implemented eigs")

	_, _, err = b.EigshLanczos(nil, tensor.LanczosOptions{})
	assert.ErrorIs(t, err, tensor.ErrNotImplemented)

	var nie *tensor.NotImplementedError
	require.ErrorAs(t, err, &nie)
	assert.Equal(t, "eigsh_lanczos", nie.Op)
}
