package latticegas

import (
	"context"
	"errors"
	"slices"
	"testing"

	"lattice-entropy/internal/core"
	"lattice-entropy/internal/entropy"
)

func gzipCompressor(t *testing.T) entropy.Compressor {
	t.Helper()
	c, err := entropy.New("gzip")
	if err != nil {
		t.Fatalf("entropy.New: %v", err)
	}
	return c
}

func TestEntropySweepLength(t *testing.T) {
	for _, steps := range []int{0, 1, 17, 250} {
		a, _ := New(8, core.NewRNG(1))
		sizes, err := a.EntropySweep(context.Background(), steps, gzipCompressor(t))
		if err != nil {
			t.Fatalf("steps=%d: %v", steps, err)
		}
		if sizes == nil || len(sizes) != steps {
			t.Fatalf("steps=%d: got %d measurements (nil=%v)", steps, len(sizes), sizes == nil)
		}
		if a.Steps() != steps {
			t.Fatalf("steps=%d: automaton took %d steps", steps, a.Steps())
		}
		for i, s := range sizes {
			if s <= 0 {
				t.Fatalf("steps=%d: measurement %d = %d", steps, i, s)
			}
		}
	}
}

func TestEntropySweepRejectsNegativeSteps(t *testing.T) {
	a, _ := New(4, core.NewRNG(1))
	sizes, err := a.EntropySweep(context.Background(), -1, gzipCompressor(t))
	if !errors.Is(err, ErrNegativeSteps) || sizes != nil {
		t.Fatalf("sizes=%v err=%v, want nil and ErrNegativeSteps", sizes, err)
	}
}

func TestEntropySweepRestartsFromHalfFill(t *testing.T) {
	a, _ := New(10, core.NewRNG(2))
	for i := 0; i < 100; i++ {
		a.Step()
	}
	if _, err := a.EntropySweep(context.Background(), 300, gzipCompressor(t)); err != nil {
		t.Fatalf("EntropySweep: %v", err)
	}
	if a.Ones() != 50 {
		t.Fatalf("ones = %d after sweep, want 50", a.Ones())
	}
}

func TestEntropySweepReproducible(t *testing.T) {
	run := func() []int {
		a, _ := New(12, core.NewRNG(11))
		sizes, err := a.EntropySweep(context.Background(), 400, gzipCompressor(t))
		if err != nil {
			t.Fatalf("EntropySweep: %v", err)
		}
		return sizes
	}
	if !slices.Equal(run(), run()) {
		t.Fatal("same seed produced different measurements")
	}
}

func TestEntropySweepTrendsUpward(t *testing.T) {
	a, _ := New(16, core.NewRNG(4))
	c := gzipCompressor(t)

	a.HalfFill()
	ordered, err := a.Measure(c)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	sizes, err := a.EntropySweep(context.Background(), 40000, c)
	if err != nil {
		t.Fatalf("EntropySweep: %v", err)
	}
	tail := sizes[len(sizes)-1000:]
	sum := 0
	for _, s := range tail {
		sum += s
	}
	mean := float64(sum) / float64(len(tail))
	if mean <= 1.3*float64(ordered) {
		t.Fatalf("mixed mean %.1f not clearly above ordered size %d", mean, ordered)
	}
}

func TestMeasureDoesNotStep(t *testing.T) {
	a, _ := New(6, core.NewRNG(1))
	a.HalfFill()
	before := a.Snapshot()
	first, err := a.Measure(gzipCompressor(t))
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	second, _ := a.Measure(gzipCompressor(t))
	if first != second || a.Steps() != 0 || !slices.Equal(before, a.Cells()) {
		t.Fatal("Measure must not mutate the automaton")
	}
}

func TestEncodeUsesConfiguredWidth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 4
	cfg.Encoding = entropy.F64
	a, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	if got := len(a.Encode(nil)); got != 16*8 {
		t.Fatalf("encoded length = %d, want %d", got, 16*8)
	}
	cfg.Encoding = "bogus"
	if _, err := NewWithConfig(cfg); err == nil {
		t.Fatal("expected error for unknown encoding")
	}
}

func TestEntropySweepCompressionFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	failing := entropy.CompressorFunc(func(src []byte) ([]byte, error) {
		calls++
		if calls == 4 {
			return nil, boom
		}
		return src, nil
	})

	a, _ := New(5, core.NewRNG(1))
	var observed []int
	sizes, err := a.EntropySweepFunc(context.Background(), 10, failing, func(step, size int) {
		observed = append(observed, step)
	})
	if sizes != nil {
		t.Fatalf("sizes = %v, want nil on failure", sizes)
	}
	if !errors.Is(err, entropy.ErrCompression) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped compression failure", err)
	}
	var ce *entropy.CompressionError
	if !errors.As(err, &ce) || ce.Step != 3 {
		t.Fatalf("err = %#v, want failure at step 3", err)
	}
	if !slices.Equal(observed, []int{0, 1, 2}) {
		t.Fatalf("observed = %v, want [0 1 2]", observed)
	}
}

func TestEntropySweepCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, _ := New(5, core.NewRNG(1))
	sizes, err := a.EntropySweepFunc(ctx, 100, gzipCompressor(t), func(step, size int) {
		if step == 9 {
			cancel()
		}
	})
	if sizes != nil {
		t.Fatalf("sizes = %v, want nil after cancellation", sizes)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if a.Steps() != 10 {
		t.Fatalf("steps = %d, want 10", a.Steps())
	}
}
