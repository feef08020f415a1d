package dlist

import "errors"

// Operation names reported by [UnderflowError].
const (
	OpPopFront = "pop_front"
	OpPopBack  = "pop_back"
)

// ErrUnderflow matches any underflow error via [errors.Is].
var ErrUnderflow = errors.New("underflow")

// UnderflowError is returned by PopFront and PopBack when the list is
// empty. Op identifies the failing operation.
type UnderflowError struct {
	Op string
}

func (e *UnderflowError) Error() string {
	return e.Op + " on empty list"
}

func (e *UnderflowError) Is(target error) bool {
	return target == ErrUnderflow
}

// IsUnderflow checks if an error is an underflow error.
func IsUnderflow(err error) bool {
	return errors.Is(err, ErrUnderflow)
}
