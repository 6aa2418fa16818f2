// Package output writes sweep artifacts: CSV measurements, run summaries, the
// run configuration, an entropy curve chart, and grid snapshots.
package output

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"lattice-entropy/internal/config"
	"lattice-entropy/internal/experiment"
	"lattice-entropy/internal/render"
)

// Measurement is one row of measurements.csv. Step counts completed steps, so
// the first row of a run has Step 1.
type Measurement struct {
	RunID string `csv:"run_id"`
	Run   int    `csv:"run"`
	Seed  int64  `csv:"seed"`
	Step  int    `csv:"step"`
	Bytes int    `csv:"compressed_bytes"`
}

// OutputManager writes run artifacts into a single directory. A nil manager
// discards everything, so callers need not check whether output is enabled.
type OutputManager struct {
	dir              string
	measurementsFile *os.File
	summaryFile      *os.File

	measurementsHeaderWritten bool
	summaryHeaderWritten      bool
}

// NewOutputManager creates dir and opens the CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "measurements.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating measurements.csv: %w", err)
	}
	om.measurementsFile = f

	f, err = os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		om.measurementsFile.Close()
		return nil, fmt.Errorf("creating summary.csv: %w", err)
	}
	om.summaryFile = f

	return om, nil
}

// Dir returns the output directory, or "" for a nil manager.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the run configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRun appends every measurement of run to measurements.csv.
func (om *OutputManager) WriteRun(run experiment.Run) error {
	if om == nil || len(run.Sizes) == 0 {
		return nil
	}
	id := run.ID.String()
	records := make([]Measurement, len(run.Sizes))
	for i, size := range run.Sizes {
		records[i] = Measurement{RunID: id, Run: run.Index, Seed: run.Seed, Step: i + 1, Bytes: size}
	}
	if err := marshal(records, om.measurementsFile, &om.measurementsHeaderWritten); err != nil {
		return fmt.Errorf("writing measurements: %w", err)
	}
	return nil
}

// WriteSummary appends a run summary to summary.csv.
func (om *OutputManager) WriteSummary(s experiment.Summary) error {
	if om == nil {
		return nil
	}
	if err := marshal([]experiment.Summary{s}, om.summaryFile, &om.summaryHeaderWritten); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// WriteSnapshot renders cells as a PNG named name+".png".
func (om *OutputManager) WriteSnapshot(name string, cells []uint8, n, scale int) error {
	if om == nil {
		return nil
	}
	img := render.GridImage(cells, n, scale, render.On, render.Off)
	if img == nil {
		return fmt.Errorf("snapshot %s: %d cells do not form a %dx%d grid", name, len(cells), n, n)
	}
	f, err := os.Create(filepath.Join(om.dir, name+".png"))
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", name, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding snapshot %s: %w", name, err)
	}
	return f.Close()
}

// Close closes all open files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	if om.measurementsFile != nil {
		errs = append(errs, om.measurementsFile.Close())
	}
	if om.summaryFile != nil {
		errs = append(errs, om.summaryFile.Close())
	}
	return errors.Join(errs...)
}

// marshal writes records, including the CSV header only on the first call.
func marshal(records any, f *os.File, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}
