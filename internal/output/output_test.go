package output

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"lattice-entropy/internal/config"
	"lattice-entropy/internal/experiment"
)

func sampleRuns() []experiment.Run {
	return []experiment.Run{
		{ID: uuid.New(), Index: 0, Seed: 1, Sizes: []int{30, 35, 41, 44}},
		{ID: uuid.New(), Index: 1, Seed: 2, Sizes: []int{31, 33, 40, 45}},
	}
}

func TestNilManagerIsNoop(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	if om.Dir() != "" {
		t.Fatal("nil manager must report empty dir")
	}
	if err := om.WriteRun(sampleRuns()[0]); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteSummary(experiment.Summary{}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteChart(sampleRuns(), 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteSnapshot("x", nil, 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWriteRunsAndSummaries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	runs := sampleRuns()
	for _, r := range runs {
		if err := om.WriteRun(r); err != nil {
			t.Fatalf("WriteRun: %v", err)
		}
		if err := om.WriteSummary(experiment.Summarize(r, 0.5)); err != nil {
			t.Fatalf("WriteSummary: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "measurements.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []Measurement
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading measurements: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("got %d measurement rows, want 8", len(rows))
	}
	if rows[0].Step != 1 || rows[0].Bytes != 30 || rows[0].RunID != runs[0].ID.String() {
		t.Fatalf("first row = %+v", rows[0])
	}
	if rows[7].Run != 1 || rows[7].Seed != 2 || rows[7].Step != 4 || rows[7].Bytes != 45 {
		t.Fatalf("last row = %+v", rows[7])
	}

	sf, err := os.Open(filepath.Join(dir, "summary.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer sf.Close()
	var summaries []experiment.Summary
	if err := gocsv.UnmarshalFile(sf, &summaries); err != nil {
		t.Fatalf("reading summaries: %v", err)
	}
	if len(summaries) != 2 || summaries[1].Seed != 2 || summaries[1].Max != 45 {
		t.Fatalf("summaries = %+v", summaries)
	}
}

func TestWriteChart(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	if err := om.WriteChart(sampleRuns(), 640, 320); err != nil {
		t.Fatalf("WriteChart: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "entropy.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("chart is not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 320 {
		t.Fatalf("chart bounds = %v", b)
	}

	short := []experiment.Run{{Sizes: []int{10}}}
	if err := om.WriteChart(short, 0, 0); !errors.Is(err, ErrChartTooShort) {
		t.Fatalf("err = %v, want ErrChartTooShort", err)
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cells := []uint8{0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1}
	if err := om.WriteSnapshot("initial", cells, 4, 2); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, "initial.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("snapshot is not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("snapshot bounds = %v", b)
	}
	if err := om.WriteSnapshot("bad", cells[:3], 4, 1); err == nil {
		t.Fatal("expected error for malformed grid")
	}
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg := config.Default()
	cfg.Lattice.Size = 12
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Lattice.Size != 12 {
		t.Fatalf("size = %d, want 12", loaded.Lattice.Size)
	}
}
