package tensor

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by backends. Match them with errors.Is.
//
// Messages returned by operations are prefixed with the operation name,
// e.g. "slice: invalid argument: ...".
var (
	// ErrArgument reports malformed call-site arguments: mismatched lengths,
	// wrong rank, non-square matrices, out of range axes.
	ErrArgument = errors.New("invalid argument")

	// ErrDimensionMismatch reports paired dimensions that do not agree.
	// Errors carrying it also match ErrArgument.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupportedDType reports a dtype the backend cannot process for the
	// requested operation. Errors carrying it also match ErrArgument.
	ErrUnsupportedDType = errors.New("unsupported dtype")

	// ErrNotImplemented reports an operation a backend deliberately does not
	// provide. Callers must select another backend to use it.
	ErrNotImplemented = errors.New("not implemented")

	// ErrLibraryUnavailable is returned by backend constructors when the
	// underlying numerical library cannot be used.
	ErrLibraryUnavailable = errors.New("numerical library unavailable")

	// ErrUnknownBackend is returned when no backend is registered under a name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrSingular reports a matrix that cannot be inverted.
	ErrSingular = errors.New("matrix is singular")
)

// NotImplementedError names the backend and the operation it refuses.
type NotImplementedError struct {
	Backend string
	Op      string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("backend '%s' has not implemented %s", e.Backend, e.Op)
}

// Is makes errors.Is(err, ErrNotImplemented) hold.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// Argumentf builds an ErrArgument error prefixed with op.
func Argumentf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, ErrArgument, fmt.Sprintf(format, args...))
}

// Mismatchf builds an error matching both ErrDimensionMismatch and ErrArgument.
func Mismatchf(op, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %w: %s", op, ErrArgument, ErrDimensionMismatch, fmt.Sprintf(format, args...))
}

// Unsupportedf builds an error matching both ErrUnsupportedDType and ErrArgument.
func Unsupportedf(op string, dt DataType, backend string) error {
	return fmt.Errorf("%s: %w: %w: %s is not supported by backend '%s'", op, ErrArgument, ErrUnsupportedDType, dt, backend)
}
