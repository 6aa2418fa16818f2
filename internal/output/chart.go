package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"lattice-entropy/internal/experiment"
)

// ErrChartTooShort is returned when runs hold fewer than two measurements,
// which leaves nothing to draw.
var ErrChartTooShort = errors.New("chart needs at least two measurements")

// WriteChart plots compressed size against step for every run into
// entropy.png. With more than one run the step-wise mean is drawn on top.
func (om *OutputManager) WriteChart(runs []experiment.Run, width, height int) error {
	if om == nil {
		return nil
	}
	graph, err := EntropyChart(runs, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(om.dir, "entropy.png"))
	if err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering chart: %w", err)
	}
	return f.Close()
}

// EntropyChart builds the step vs. compressed size chart.
func EntropyChart(runs []experiment.Run, width, height int) (*chart.Chart, error) {
	steps := len(experiment.MeanCurve(runs))
	if steps < 2 {
		return nil, ErrChartTooShort
	}
	xs := make([]float64, steps)
	for i := range xs {
		xs[i] = float64(i + 1)
	}

	var series []chart.Series
	for _, r := range runs {
		ys := make([]float64, steps)
		for i := range ys {
			ys[i] = float64(r.Sizes[i])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("seed %d", r.Seed),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 1},
		})
	}
	if len(runs) > 1 {
		series = append(series, chart.ContinuousSeries{
			Name:    "mean",
			XValues: xs,
			YValues: experiment.MeanCurve(runs),
			Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 2},
		})
	}

	graph := &chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name: "step",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name: "compressed bytes",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph, nil
}
