package latticegas

import (
	"context"
	"errors"
	"fmt"

	"lattice-entropy/internal/entropy"
)

// ErrNegativeSteps rejects sweeps asked to run a negative number of steps.
var ErrNegativeSteps = errors.New("sweep steps must not be negative")

// Observer receives each measurement as soon as it is taken. step is
// zero-based.
type Observer func(step, size int)

// Encode appends the canonical encoding of the grid to dst.
func (a *Automaton) Encode(dst []byte) []byte {
	return a.cfg.Encoding.AppendCells(dst, a.grid.Cells())
}

// Measure compresses the current grid and returns the compressed length
// without advancing the automaton.
func (a *Automaton) Measure(c entropy.Compressor) (int, error) {
	a.buf = a.Encode(a.buf[:0])
	return entropy.Size(c, a.buf)
}

// EntropySweep restarts from the half-filled configuration, runs steps steps,
// and returns the compressed size of the grid after each one.
//
// The result is all-or-nothing: a compression failure or cancellation returns
// a nil slice. Cancellation is checked between steps.
func (a *Automaton) EntropySweep(ctx context.Context, steps int, c entropy.Compressor) ([]int, error) {
	return a.EntropySweepFunc(ctx, steps, c, nil)
}

// EntropySweepFunc is EntropySweep with an observer called after every
// measurement, so callers can keep partial progress of a failed sweep.
func (a *Automaton) EntropySweepFunc(ctx context.Context, steps int, c entropy.Compressor, observe Observer) ([]int, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSteps, steps)
	}
	a.InitializeEmpty()
	a.HalfFill()

	sizes := make([]int, 0, steps)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sweep interrupted after %d of %d steps: %w", i, steps, err)
		}
		a.Step()
		a.buf = a.Encode(a.buf[:0])
		out, err := c.Compress(a.buf)
		if err != nil {
			return nil, &entropy.CompressionError{Step: i, Err: err}
		}
		sizes = append(sizes, len(out))
		if observe != nil {
			observe(i, len(out))
		}
	}
	return sizes, nil
}
