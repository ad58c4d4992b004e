package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensornet/internal/tensor"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"gonum"}, Names())
}

func TestNew(t *testing.T) {
	for _, name := range []string{"gonum", " GoNum "} {
		b, err := New(name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, "gonum", b.Name())
	}
}

func TestNew_Unknown(t *testing.T) {
	b, err := New("tensorflow", nil)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, tensor.ErrUnknownBackend)
	assert.Contains(t, err.Error(), "available: gonum")
}
