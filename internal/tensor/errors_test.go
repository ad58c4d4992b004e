package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHelpers(t *testing.T) {
	err := Argumentf("slice", "bad %s", "input")
	assert.ErrorIs(t, err, ErrArgument)
	assert.Equal(t, "slice: invalid argument: bad input", err.Error())

	err = Mismatchf("tensordot", "%d vs %d", 2, 3)
	assert.ErrorIs(t, err, ErrArgument)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = Unsupportedf("svd", Complex128, "gonum")
	assert.ErrorIs(t, err, ErrArgument)
	assert.ErrorIs(t, err, ErrUnsupportedDType)
	assert.Contains(t, err.Error(), "complex128 is not supported by backend 'gonum'")
}

func TestNotImplementedError(t *testing.T) {
	var err error = &NotImplementedError{Backend: "gonum", Op: "eigs"}
	assert.Equal(t, "backend 'gonum' has not implemented eigs", err.Error())
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.False(t, errors.Is(err, ErrArgument))

	var nie *NotImplementedError
	assert.True(t, errors.As(err, &nie))
	assert.Equal(t, "eigs", nie.Op)
}
