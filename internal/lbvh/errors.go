package lbvh

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("%w: ...") for detail; test
// with errors.Is.
var (
	// ErrEmptyOrTrivial is returned by Build when fewer than two primitives
	// are supplied; a tree over 0 or 1 primitives has no internal nodes.
	ErrEmptyOrTrivial = errors.New("lbvh: build needs at least two primitives")

	// ErrOutOfMemory is reserved for allocator-backed Converter/Intersector
	// implementations to surface their own exhaustion. Go's runtime treats
	// real allocation failure as a fatal, unrecoverable error rather than a
	// panic Build could catch, so Build itself never returns this value.
	ErrOutOfMemory = errors.New("lbvh: out of memory")

	// ErrInvalidInput is returned by Build, only when ValidateInput is set,
	// for a primitive whose converted AABB has Min > Max on some axis.
	ErrInvalidInput = errors.New("lbvh: invalid primitive bounds")
)
