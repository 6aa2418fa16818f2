package experiment

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses one run's measurement sequence.
type Summary struct {
	RunID string `csv:"run_id"`
	Run   int    `csv:"run"`
	Seed  int64  `csv:"seed"`
	Steps int    `csv:"steps"`
	Ones  int    `csv:"ones"`

	First float64 `csv:"first_bytes"`
	Last  float64 `csv:"last_bytes"`
	Min   float64 `csv:"min_bytes"`
	Max   float64 `csv:"max_bytes"`

	// Plateau statistics over the final tail of the sweep.
	PlateauMean float64 `csv:"plateau_mean"`
	PlateauStd  float64 `csv:"plateau_std"`

	// EquilibrationStep is the first step reaching 95% of the plateau mean,
	// or -1 when the sweep is empty.
	EquilibrationStep int `csv:"equilibration_step"`

	ElapsedMS int64 `csv:"elapsed_ms"`
}

// Summarize computes plateau statistics over the last tailFraction of the
// run's measurements. tailFraction is clamped to (0, 1].
func Summarize(run Run, tailFraction float64) Summary {
	s := Summary{
		RunID:             run.ID.String(),
		Run:               run.Index,
		Seed:              run.Seed,
		Steps:             len(run.Sizes),
		Ones:              run.Ones,
		EquilibrationStep: -1,
		ElapsedMS:         run.Elapsed.Milliseconds(),
	}
	if len(run.Sizes) == 0 {
		return s
	}

	values := toFloats(run.Sizes)
	s.First = values[0]
	s.Last = values[len(values)-1]
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)

	s.PlateauMean, s.PlateauStd = stat.MeanStdDev(tail(values, tailFraction), nil)
	if math.IsNaN(s.PlateauStd) {
		s.PlateauStd = 0
	}

	threshold := 0.95 * s.PlateauMean
	for i, v := range values {
		if v >= threshold {
			s.EquilibrationStep = i
			break
		}
	}
	return s
}

// MeanCurve averages the measurement sequences of runs step by step. Runs are
// expected to share a step count; the result is as long as the shortest run.
func MeanCurve(runs []Run) []float64 {
	if len(runs) == 0 {
		return nil
	}
	steps := len(runs[0].Sizes)
	for _, r := range runs[1:] {
		steps = min(steps, len(r.Sizes))
	}
	curve := make([]float64, steps)
	column := make([]float64, len(runs))
	for i := range curve {
		for j, r := range runs {
			column[j] = float64(r.Sizes[i])
		}
		curve[i] = stat.Mean(column, nil)
	}
	return curve
}

// TotalElapsed sums the wall time of all runs.
func TotalElapsed(runs []Run) time.Duration {
	var total time.Duration
	for _, r := range runs {
		total += r.Elapsed
	}
	return total
}

func tail(values []float64, fraction float64) []float64 {
	if fraction <= 0 || fraction > 1 {
		fraction = 1
	}
	n := int(math.Ceil(float64(len(values)) * fraction))
	n = max(1, min(n, len(values)))
	return values[len(values)-n:]
}

func toFloats(sizes []int) []float64 {
	out := make([]float64, len(sizes))
	for i, v := range sizes {
		out[i] = float64(v)
	}
	return out
}
