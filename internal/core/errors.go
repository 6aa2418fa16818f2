package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSize reports a lattice too small to hold an interior.
var ErrInvalidSize = errors.New("invalid lattice size")

// InvalidSizeError carries the rejected size. It matches ErrInvalidSize.
type InvalidSizeError struct {
	N int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("invalid lattice size %d: must be greater than 1", e.N)
}

// Is lets errors.Is match the sentinel.
func (e *InvalidSizeError) Is(target error) bool { return target == ErrInvalidSize }
