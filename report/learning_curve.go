// Package report renders the per-tick history of a simulation as HTML line charts.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrEmptyHistory is returned when there is nothing to plot.
var ErrEmptyHistory = errors.New("history has no ticks to plot")

// Series names as they appear in the chart legend.
const (
	PerformanceSeries     = "Performance"
	TotalRewardSeries     = "Total reward"
	ExplorationRateSeries = "Exploration rate"
	ModelSizeSeries       = "Known cells"
)

// Render writes a page with two charts to w: the reward curves and the
// exploration/model growth curves, both indexed by time step.
func Render(w io.Writer, title string, history []domain.TickRecord) error {
	if len(history) == 0 {
		return ErrEmptyHistory
	}

	steps := make([]string, 0, len(history))
	performance := make([]opts.LineData, 0, len(history))
	reward := make([]opts.LineData, 0, len(history))
	exploration := make([]opts.LineData, 0, len(history))
	modelSize := make([]opts.LineData, 0, len(history))
	for _, r := range history {
		steps = append(steps, fmt.Sprintf("%d", r.TimeStep))
		performance = append(performance, opts.LineData{Value: r.Performance})
		reward = append(reward, opts.LineData{Value: r.TotalReward})
		exploration = append(exploration, opts.LineData{Value: r.ExplorationRate})
		modelSize = append(modelSize, opts.LineData{Value: r.ModelSize})
	}

	rewards := newLine(title)
	rewards.SetXAxis(steps).
		AddSeries(PerformanceSeries, performance).
		AddSeries(TotalRewardSeries, reward)

	learning := newLine(title + " (exploration)")
	learning.SetXAxis(steps).
		AddSeries(ExplorationRateSeries, exploration).
		AddSeries(ModelSizeSeries, modelSize)

	page := components.NewPage()
	page.AddCharts(rewards, learning)
	return page.Render(w)
}

// WriteFile renders the history into dir/name, creating dir if needed, and returns the file path.
func WriteFile(dir, name, title string, history []domain.TickRecord) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := Render(f, title, history); err != nil {
		return "", err
	}
	return path, nil
}

func newLine(title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "tick",
		}),
	)
	return line
}
