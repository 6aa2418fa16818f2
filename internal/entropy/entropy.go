// Package entropy measures the structural complexity of a lattice by the size
// of a lossless compression of its canonical byte encoding.
package entropy

import (
	"errors"
	"fmt"
)

// ErrCompression is matched by every error raised while compressing a
// measurement.
var ErrCompression = errors.New("compression failed")

// Compressor is a lossless general-purpose byte compressor. Implementations
// must not retain src after returning.
type Compressor interface {
	Compress(src []byte) ([]byte, error)
}

// CompressorFunc adapts a plain function to the Compressor interface.
type CompressorFunc func(src []byte) ([]byte, error)

// Compress calls f(src).
func (f CompressorFunc) Compress(src []byte) ([]byte, error) { return f(src) }

// CompressionError reports a failed measurement. Step is the zero-based sweep
// step being measured, or -1 outside of a sweep.
type CompressionError struct {
	Step int
	Err  error
}

func (e *CompressionError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("compression failed: %v", e.Err)
	}
	return fmt.Sprintf("compression failed at step %d: %v", e.Step, e.Err)
}

func (e *CompressionError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrCompression.
func (e *CompressionError) Is(target error) bool { return target == ErrCompression }

// Size returns len(c.Compress(src)).
func Size(c Compressor, src []byte) (int, error) {
	out, err := c.Compress(src)
	if err != nil {
		return 0, &CompressionError{Step: -1, Err: err}
	}
	return len(out), nil
}
