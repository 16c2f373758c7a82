package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func history() []domain.TickRecord {
	return []domain.TickRecord{
		{TimeStep: 1, TotalReward: -0.1, ExplorationRate: 0.5, ModelSize: 5},
		{TimeStep: 2, TotalReward: -10.1, ExplorationRate: 0.5, ModelSize: 7},
		{TimeStep: 3, Performance: 10, TotalReward: 9.9, ExplorationRate: 0.45, ModelSize: 9},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "qlearning on maze", history()))

	html := buf.String()
	assert.Contains(t, html, "qlearning on maze")
	for _, series := range []string{PerformanceSeries, TotalRewardSeries, ExplorationRateSeries, ModelSizeSeries} {
		assert.Contains(t, html, series)
	}
}

func TestRenderEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, "empty", nil), ErrEmptyHistory)
	assert.Zero(t, buf.Len())
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")

	path, err := WriteFile(dir, "run.html", "reflex on corridor", history())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run.html"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "reflex on corridor")
}
