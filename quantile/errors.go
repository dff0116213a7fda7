package quantile

import "golang.org/x/xerrors"

// Sentinel error kinds. Callers check against these with
// errors.Is; runtime operations over an already-valid Summary never return
// an error -- only construction and codec operations can fail.
var (
	// ErrInvalidParameters is returned by NewParameters when the requested
	// configuration, or one of its derived values, is out of range.
	ErrInvalidParameters = xerrors.New("quantile: invalid parameters")

	// ErrCodec is returned by Encode/Decode for a malformed stream or an
	// element-codec failure.
	ErrCodec = xerrors.New("quantile: codec error")

	// ErrIO is returned by Encode/Decode when the underlying stream fails.
	ErrIO = xerrors.New("quantile: io error")
)

func wrapIO(context string, err error) error {
	return xerrors.Errorf("%s: %v: %w", context, err, ErrIO)
}

func wrapCodec(context string, err error) error {
	return xerrors.Errorf("%s: %v: %w", context, err, ErrCodec)
}
