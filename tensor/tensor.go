// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/tensornet/internal/tensor"

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// DataType identifies the element type of a tensor.
type DataType = tensor.DataType

// Data types.
const (
	Unspecified = tensor.Unspecified
	Float32     = tensor.Float32
	Float64     = tensor.Float64
	Complex64   = tensor.Complex64
	Complex128  = tensor.Complex128
	Int32       = tensor.Int32
	Int64       = tensor.Int64
	Bool        = tensor.Bool
)

// RawTensor is a dense tensor in row-major order.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zero-filled tensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromFloat64s builds a tensor of dtype from row-major values.
func FromFloat64s(shape Shape, dtype DataType, vals []float64) (*RawTensor, error) {
	return tensor.FromFloat64s(shape, dtype, vals)
}

// FromComplex128s builds a complex tensor from row-major values.
func FromComplex128s(shape Shape, dtype DataType, vals []complex128) (*RawTensor, error) {
	return tensor.FromComplex128s(shape, dtype, vals)
}

// ParseDataType parses a dtype name such as "float64" or "complex128".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}
