package gonum

import (
	"github.com/born-ml/tensornet/internal/decompositions"
	"github.com/born-ml/tensornet/internal/tensor"
	"github.com/born-ml/tensornet/internal/tensordot"
)

// Tensordot contracts axes[0] of a with axes[1] of b.
func (b *Backend) Tensordot(a, c *tensor.RawTensor, axes [2][]int) (*tensor.RawTensor, error) {
	return tensordot.Tensordot(a, c, axes)
}

// OuterProduct returns the tensor product of a and c.
func (b *Backend) OuterProduct(a, c *tensor.RawTensor) (*tensor.RawTensor, error) {
	return tensordot.Tensordot(a, c, [2][]int{{}, {}})
}

// Einsum evaluates an Einstein summation expression.
func (b *Backend) Einsum(expression string, tensors ...*tensor.RawTensor) (*tensor.RawTensor, error) {
	return tensordot.Einsum(expression, tensors...)
}

// SVDDecomposition computes a truncated SVD of t split at splitAxis.
func (b *Backend) SVDDecomposition(t *tensor.RawTensor, splitAxis int, opts tensor.TruncationOptions) (u, s, vh, sRest *tensor.RawTensor, err error) {
	return decompositions.SVD(t, splitAxis, opts)
}

// QRDecomposition computes a reduced QR of t split at splitAxis.
func (b *Backend) QRDecomposition(t *tensor.RawTensor, splitAxis int) (q, r *tensor.RawTensor, err error) {
	return decompositions.QR(t, splitAxis)
}

// RQDecomposition computes a reduced RQ of t split at splitAxis.
func (b *Backend) RQDecomposition(t *tensor.RawTensor, splitAxis int) (r, q *tensor.RawTensor, err error) {
	return decompositions.RQ(t, splitAxis)
}
