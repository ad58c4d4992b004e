// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API of tensornet: the dense tensor
// type, the numerical Backend contract and the errors backends return.
//
// The package defines:
//   - RawTensor: dense row-major tensor storage with a shape and dtype
//   - Backend: the operation contract every numerical backend implements
//   - Shape, DataType, TruncationOptions: core type definitions
//
// Example:
//
//	b, err := gonum.New()
//	if err != nil {
//	    return err
//	}
//	m, _ := b.ConvertToTensor([][]float64{{1, 2}, {3, 4}})
//	u, s, vh, rest, err := b.SVDDecomposition(m, 1, tensor.TruncationOptions{})
package tensor
