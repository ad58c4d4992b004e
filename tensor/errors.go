// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/tensornet/internal/tensor"

// Errors returned by backends. Match them with errors.Is.
var (
	ErrArgument           = tensor.ErrArgument
	ErrDimensionMismatch  = tensor.ErrDimensionMismatch
	ErrUnsupportedDType   = tensor.ErrUnsupportedDType
	ErrNotImplemented     = tensor.ErrNotImplemented
	ErrLibraryUnavailable = tensor.ErrLibraryUnavailable
	ErrUnknownBackend     = tensor.ErrUnknownBackend
	ErrSingular           = tensor.ErrSingular
)

// NotImplementedError names a backend and an operation it does not provide.
type NotImplementedError = tensor.NotImplementedError
