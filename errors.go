package zarr

import "errors"

// Error kinds surfaced by this package. Callers match them with
// errors.Is; everything returned by the engine wraps one of these,
// except errors coming out of a Store or Codec and context errors from
// a cancelled ctx, which propagate unchanged, and JSON decoding errors
// for .zarray and .zattrs documents, which are wrapped with context
// but carry none of these kinds.
var (
	// ErrBounds reports an integer index outside [-len, len) after
	// normalization.
	ErrBounds = errors.New("zarr: index out of bounds")

	// ErrInvalidSlice reports a slice with step 0 or an otherwise
	// unusable slice.
	ErrInvalidSlice = errors.New("zarr: invalid slice")

	// ErrTooManyIndices reports a selection longer than the array rank.
	ErrTooManyIndices = errors.New("zarr: too many indices")

	// ErrNegativeStep reports a reversed slice in a context that only
	// supports forward iteration (the write path).
	ErrNegativeStep = errors.New("zarr: negative step not supported here")

	// ErrValue reports a shape, dtype or buffer-length mismatch, or an
	// unusable metadata field.
	ErrValue = errors.New("zarr: invalid value")

	// ErrReadOnly reports a write against a read-only array.
	ErrReadOnly = errors.New("zarr: array is read-only")

	// ErrKeyNotFound reports a store key that does not exist.
	ErrKeyNotFound = errors.New("zarr: key not found")

	// ErrPathNotFound reports a storage path with no array metadata.
	ErrPathNotFound = errors.New("zarr: path not found")
)
