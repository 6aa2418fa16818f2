package core

import "time"

// FixedStep paces periodic work, such as progress reports during a long sweep,
// to at most a fixed number of firings per second.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep firing at most rate times per second.
// The first call to ShouldStep always fires.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(rate)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the firing rate. Non-positive rates fall back to once per
// second.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 1
	}
	f.step = time.Second / time.Duration(rate)
}

// ShouldStep reports whether enough time has passed since the last firing.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator = 0
		return true
	}
	return false
}
