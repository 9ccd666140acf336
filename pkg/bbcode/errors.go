package bbcode

import (
	"errors"
	"fmt"
)

// ErrInternal marks a violation of the tokenizer's own invariants. Malformed
// input never produces it; seeing it means a bug in this package.
var ErrInternal = errors.New("bbcode: internal invariant violated")

// InternalError describes where and why an internal invariant broke.
type InternalError struct {
	Offset int
	Reason string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("bbcode: internal error at offset %d: %s", e.Offset, e.Reason)
}

// Is reports ErrInternal so callers can use errors.Is.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}
