package tensor

import "math/rand/v2"

// TruncationOptions bounds the singular values kept by an SVD.
//
// The zero value keeps every singular value.
type TruncationOptions struct {
	// MaxSingularValues caps the number of kept values. <= 0 means no cap.
	MaxSingularValues int
	// MaxTruncationError bounds the norm of the discarded values. nil disables
	// it; a bound of 0 still drops singular values that are exactly zero.
	MaxTruncationError *float64
	// Relative scales MaxTruncationError by the largest singular value.
	Relative bool
}

// LinearOperator applies a linear map to a vector, as consumed by iterative
// eigensolvers.
type LinearOperator func(x *RawTensor) (*RawTensor, error)

// EigsOptions configures an Arnoldi eigensolver.
type EigsOptions struct {
	InitialState  *RawTensor
	NumKrylovVecs int     // 200 when zero
	NumEig        int     // 1 when zero
	Tol           float64 // 1e-8 when zero
	Which         string  // "LR" when empty
	MaxIter       int
	DType         DataType
}

// LanczosOptions configures a Lanczos eigensolver for Hermitian operators.
type LanczosOptions struct {
	InitialState    *RawTensor
	NumKrylovVecs   int     // 200 when zero
	NumEig          int     // 1 when zero
	Tol             float64 // 1e-8 when zero
	Delta           float64 // 1e-8 when zero
	NDiag           int     // 20 when zero
	Reorthogonalize bool
}

// Backend defines the interface that all compute backends must implement.
// Each backend binds the contract to one numerical library.
//
// Every operation is synchronous and returns a fresh result (Reshape may
// return a view). Malformed arguments are reported with errors matching
// ErrArgument; operations a backend does not provide return errors matching
// ErrNotImplemented.
//
// Implementations:
//   - gonum: dense linear algebra via gonum.org/v1/gonum
type Backend interface {
	// Contraction.
	Tensordot(a, b *RawTensor, axes [2][]int) (*RawTensor, error) // Contract paired axes.
	OuterProduct(a, b *RawTensor) (*RawTensor, error)              // Tensordot without contracted axes.
	Einsum(expression string, tensors ...*RawTensor) (*RawTensor, error)

	// Shape operations.
	Reshape(t *RawTensor, shape Shape) (*RawTensor, error)
	Transpose(t *RawTensor, perm ...int) (*RawTensor, error) // Empty perm reverses the axes.
	Slice(t *RawTensor, startIndices, sliceSizes []int) (*RawTensor, error)
	ShapeConcat(values []*RawTensor, axis int) (*RawTensor, error)
	ShapeTensor(t *RawTensor) (*RawTensor, error) // Int64 vector of dims.
	ShapeTuple(t *RawTensor) []int
	SparseShape(t *RawTensor) []int
	ShapeProd(values *RawTensor) (*RawTensor, error)

	// Decompositions, split around splitAxis.
	SVDDecomposition(t *RawTensor, splitAxis int, opts TruncationOptions) (u, s, vh, sRest *RawTensor, err error)
	QRDecomposition(t *RawTensor, splitAxis int) (q, r *RawTensor, err error)
	RQDecomposition(t *RawTensor, splitAxis int) (r, q *RawTensor, err error)

	// Linear algebra.
	Diag(t *RawTensor) (*RawTensor, error)
	Trace(t *RawTensor) (*RawTensor, error)
	Norm(t *RawTensor) (*RawTensor, error)
	Inv(matrix *RawTensor) (*RawTensor, error)
	Expm(matrix *RawTensor) (*RawTensor, error)
	Eigh(matrix *RawTensor) (values, vectors *RawTensor, err error)
	Eigs(op LinearOperator, opts EigsOptions) (values, vectors []*RawTensor, err error)
	EigshLanczos(op LinearOperator, opts LanczosOptions) (values, vectors []*RawTensor, err error)

	// Element-wise binary operations (NumPy broadcasting).
	Addition(a, b *RawTensor) (*RawTensor, error)
	Subtraction(a, b *RawTensor) (*RawTensor, error)
	Multiply(a, b *RawTensor) (*RawTensor, error)
	Divide(a, b *RawTensor) (*RawTensor, error)
	BroadcastRightMultiplication(t1, t2 *RawTensor) (*RawTensor, error) // t2 must be a vector.
	BroadcastLeftMultiplication(t1, t2 *RawTensor) (*RawTensor, error)  // t1 must be a vector.
	IndexUpdate(t, mask, assignee *RawTensor) (*RawTensor, error)

	// Element-wise math.
	Sqrt(t *RawTensor) (*RawTensor, error)
	Sin(t *RawTensor) (*RawTensor, error)
	Cos(t *RawTensor) (*RawTensor, error)
	Exp(t *RawTensor) (*RawTensor, error)
	Log(t *RawTensor) (*RawTensor, error)
	Conj(t *RawTensor) (*RawTensor, error)

	// Creation. An Unspecified dtype means Float64.
	ConvertToTensor(value any) (*RawTensor, error)
	Eye(n int, dtype DataType, m int) (*RawTensor, error) // m <= 0 means n.
	Ones(shape Shape, dtype DataType) (*RawTensor, error)
	Zeros(shape Shape, dtype DataType) (*RawTensor, error)
	Randn(shape Shape, dtype DataType, src rand.Source) (*RawTensor, error)
	RandomUniform(shape Shape, boundaries [2]float64, dtype DataType, src rand.Source) (*RawTensor, error)

	// Metadata.
	Name() string
}
