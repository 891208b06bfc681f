package fingertree

import (
	"errors"
	"fmt"
)

// Errors returned by tree and iterator operations.
var (
	// ErrIndexOutOfRange indicates a position outside the valid range of the tree.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrExhausted indicates an iterator has no further element in the requested direction.
	ErrExhausted = errors.New("iteration exhausted")

	// ErrUnsupported indicates an attempt to modify a tree through an iterator.
	ErrUnsupported = errors.New("unsupported operation: tree is immutable")

	// ErrInvariant indicates a structural invariant does not hold.
	ErrInvariant = errors.New("invariant violated")
)

// indexError wraps ErrIndexOutOfRange with the offending index and the size.
func indexError(i, n int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, n)
}

// InvariantError describes a structural invariant violation found by Validate.
type InvariantError struct {
	// Path locates the offending structure, e.g. "middle.left[2]".
	Path    string
	Message string
}

func (e *InvariantError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrInvariant, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", ErrInvariant, e.Path, e.Message)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}
