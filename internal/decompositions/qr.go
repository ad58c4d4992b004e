package decompositions

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/tensornet/internal/tensor"
)

// reducedQR returns the reduced factorization a = q*r with q of size m x k
// and r of size k x n, k = min(m, n).
//
// gonum's QR requires m >= n. Wide matrices are handled by factoring their
// leading square block and projecting the remaining columns onto its Q.
func reducedQR(a *mat.Dense) (q, r *mat.Dense) {
	m, n := a.Dims()
	var qr mat.QR
	var qFull mat.Dense

	if m >= n {
		var rFull mat.Dense
		qr.Factorize(a)
		qr.QTo(&qFull)
		qr.RTo(&rFull)
		q = mat.NewDense(m, n, columns(&qFull, n))
		r = mat.NewDense(n, n, rows(&rFull, n))
		return q, r
	}

	qr.Factorize(a.Slice(0, m, 0, m))
	qr.QTo(&qFull)
	r = mat.NewDense(m, n, nil)
	r.Mul(qFull.T(), a)
	// Entries below the diagonal are roundoff.
	for i := 1; i < m; i++ {
		for j := 0; j < i; j++ {
			r.Set(i, j, 0)
		}
	}
	return &qFull, r
}

// QR computes q, r with q shaped left+[k] and r shaped [k]+right, where
// q has orthonormal columns and r is upper triangular.
func QR(t *tensor.RawTensor, splitAxis int) (q, r *tensor.RawTensor, err error) {
	const op = "qr_decomposition"

	sp, err := splitAt(op, t, splitAxis)
	if err != nil {
		return nil, nil, err
	}
	a, err := matrixOf(op, t, sp)
	if err != nil {
		return nil, nil, err
	}
	dtype := t.DType()
	k := min(sp.rows, sp.cols)

	if a == nil {
		if q, err = tensor.NewRaw(concat(sp.left, k), dtype); err != nil {
			return nil, nil, err
		}
		r, err = tensor.NewRaw(prepend(k, sp.right), dtype)
		return q, r, err
	}

	qM, rM := reducedQR(a)
	if q, err = tensor.FromFloat64s(concat(sp.left, k), dtype, qM.RawMatrix().Data); err != nil {
		return nil, nil, err
	}
	if r, err = tensor.FromFloat64s(prepend(k, sp.right), dtype, rM.RawMatrix().Data); err != nil {
		return nil, nil, err
	}
	return q, r, nil
}

// RQ computes r, q with r shaped left+[k] and q shaped [k]+right, where
// r is lower triangular and q has orthonormal rows.
//
// It factors the transpose: if aᵀ = q'r' then a = r'ᵀq'ᵀ.
func RQ(t *tensor.RawTensor, splitAxis int) (r, q *tensor.RawTensor, err error) {
	const op = "rq_decomposition"

	sp, err := splitAt(op, t, splitAxis)
	if err != nil {
		return nil, nil, err
	}
	a, err := matrixOf(op, t, sp)
	if err != nil {
		return nil, nil, err
	}
	dtype := t.DType()
	k := min(sp.rows, sp.cols)

	if a == nil {
		if r, err = tensor.NewRaw(concat(sp.left, k), dtype); err != nil {
			return nil, nil, err
		}
		q, err = tensor.NewRaw(prepend(k, sp.right), dtype)
		return r, q, err
	}

	qT, rT := reducedQR(mat.DenseCopyOf(a.T()))
	// qT is cols x k, rT is k x rows.
	if r, err = tensor.FromFloat64s(concat(sp.left, k), dtype, rows(rT.T(), sp.rows)); err != nil {
		return nil, nil, err
	}
	if q, err = tensor.FromFloat64s(prepend(k, sp.right), dtype, rows(qT.T(), k)); err != nil {
		return nil, nil, err
	}
	return r, q, nil
}
