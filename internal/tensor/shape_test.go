package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 0, Shape{3, 0}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, Shape{}.Validate())
	require.NoError(t, Shape{0, MaxElements, 1}.Validate())
	require.NoError(t, Shape{MaxElements}.Validate())

	assert.Error(t, Shape{2, -1}.Validate())
	assert.Error(t, Shape{MaxElements, 2}.Validate())
	assert.Error(t, Shape{math.MaxInt / 2, 3}.Validate())

	_, err := NewRaw(Shape{math.MaxInt / 2, 3}, Float64)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Equal(t, []int{}, Shape{}.ComputeStrides())
}

func TestNormalizeAxis(t *testing.T) {
	ax, err := NormalizeAxis(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, ax)

	_, err = NormalizeAxis(3, 3)
	assert.Error(t, err)
	_, err = NormalizeAxis(-4, 3)
	assert.Error(t, err)
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{Shape{5}, Shape{2, 5}, Shape{2, 5}, true, false},
		{Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}
	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.broadcast, broadcast)
	}
}

func TestBroadcastIndex(t *testing.T) {
	// [3] broadcast to [2, 3] repeats the row.
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, BroadcastIndex(Shape{3}, Shape{2, 3}))
	// [2, 1] broadcast to [2, 3] repeats each entry.
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, BroadcastIndex(Shape{2, 1}, Shape{2, 3}))
	// Scalars map everywhere to 0.
	assert.Equal(t, []int{0, 0, 0, 0}, BroadcastIndex(Shape{}, Shape{2, 2}))
	// Identity.
	assert.Equal(t, []int{0, 1, 2, 3}, BroadcastIndex(Shape{2, 2}, Shape{2, 2}))
}
