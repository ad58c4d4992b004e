// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/tensornet/internal/tensor"

// Backend defines the operations every numerical backend implements.
//
// Implementations:
//   - backend/gonum: dense linear algebra via gonum.org/v1/gonum
type Backend = tensor.Backend

// TruncationOptions bounds the singular values kept by SVDDecomposition.
type TruncationOptions = tensor.TruncationOptions

// LinearOperator applies a linear map, as consumed by Eigs and EigshLanczos.
type LinearOperator = tensor.LinearOperator

// EigsOptions configures Eigs.
type EigsOptions = tensor.EigsOptions

// LanczosOptions configures EigshLanczos.
type LanczosOptions = tensor.LanczosOptions
