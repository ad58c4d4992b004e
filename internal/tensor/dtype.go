// Package tensor provides the core tensor types, the error taxonomy and the
// Backend contract shared by every tensornet backend.
package tensor

import (
	"fmt"
	"strings"
)

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
//
// Unspecified is the zero value and resolves to Float64 wherever a
// constructor accepts an optional dtype.
const (
	Unspecified DataType = iota
	Float32
	Float64
	Complex64
	Complex128
	Int32
	Int64
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64, Complex64:
		return 8
	case Complex128:
		return 16
	case Bool:
		return 1
	default:
		panic(fmt.Sprintf("unknown data type %d", int(dt)))
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Unspecified:
		return "unspecified"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// OrDefault resolves Unspecified to Float64.
func (dt DataType) OrDefault() DataType {
	if dt == Unspecified {
		return Float64
	}
	return dt
}

// IsComplex reports whether dt is a complex type.
func (dt DataType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// IsFloat reports whether dt is a real floating point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsInteger reports whether dt is a signed integer type.
func (dt DataType) IsInteger() bool {
	return dt == Int32 || dt == Int64
}

// IsNumeric reports whether arithmetic is defined for dt.
func (dt DataType) IsNumeric() bool {
	switch dt {
	case Float32, Float64, Complex64, Complex128, Int32, Int64:
		return true
	default:
		return false
	}
}

// Real returns the real counterpart of a complex type (complex64 -> float32).
// Non-complex types are returned unchanged.
func (dt DataType) Real() DataType {
	switch dt {
	case Complex64:
		return Float32
	case Complex128:
		return Float64
	default:
		return dt
	}
}

// ParseDataType converts a dtype name such as "float64" or "complex128".
// The empty string yields Unspecified.
func ParseDataType(name string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Unspecified, nil
	case "float32", "f32":
		return Float32, nil
	case "float64", "f64", "double":
		return Float64, nil
	case "complex64", "c64":
		return Complex64, nil
	case "complex128", "c128", "complex":
		return Complex128, nil
	case "int32", "i32":
		return Int32, nil
	case "int64", "i64":
		return Int64, nil
	case "bool":
		return Bool, nil
	default:
		return Unspecified, fmt.Errorf("%w: unknown dtype %q", ErrArgument, name)
	}
}
