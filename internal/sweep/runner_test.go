package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/trajsweep/internal/core/observability/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func smallConfig() *Config {
	cfg := DefaultConfig()
	cfg.Grid.Angle = Range{Start: 70, End: 72, Step: 1}
	cfg.Grid.RPM = Range{Start: 3000, End: 6000, Step: 500}
	cfg.Grid.Workers = 2
	return cfg
}

func TestRunProducesOrderedGrid(t *testing.T) {
	table, err := NewRunner(log.Nop()).Run(context.Background(), smallConfig())
	require.NoError(t, err)

	require.Len(t, table.Rows, 3*7)
	assert.NotEmpty(t, table.RunID)

	i := 0
	for angle := 70.0; angle <= 72; angle++ {
		for rpm := 3000.0; rpm <= 6000; rpm += 500 {
			assert.Equal(t, angle, table.Rows[i].Angle)
			assert.Equal(t, rpm, table.Rows[i].RPM)
			i++
		}
	}
}

func TestRunKeepsUnresolvedRows(t *testing.T) {
	table, err := NewRunner(log.Nop()).Run(context.Background(), smallConfig())
	require.NoError(t, err)

	stats := table.Stats()
	assert.Equal(t, 21, stats.Rows)
	assert.Positive(t, stats.Resolved)
	assert.Positive(t, stats.Unresolved)

	// the slowest shot never reaches the goal height
	first := table.Rows[0]
	assert.True(t, math.IsNaN(first.Range))
	assert.True(t, math.IsNaN(first.Airtime))

	last := table.Rows[len(table.Rows)-1]
	assert.True(t, last.Resolved())
	assert.Positive(t, last.Range)

	best, ok := table.Best()
	require.True(t, ok)
	assert.True(t, best.Resolved())
}

func TestRunLogsSummaryWithBestRow(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	runner := NewRunner(log.NewFromZap(zap.New(core), log.LevelInfo))

	table, err := runner.Run(context.Background(), smallConfig())
	require.NoError(t, err)
	best, ok := table.Best()
	require.True(t, ok)

	finished := logs.FilterMessage("sweep finished").All()
	require.Len(t, finished, 1)
	ctx := finished[0].ContextMap()
	assert.Equal(t, table.RunID, ctx["run_id"])
	assert.Equal(t, int64(21), ctx["rows"])
	assert.Equal(t, best.Angle, ctx["best_angle"])
	assert.Equal(t, best.RPM, ctx["best_rpm"])
	assert.Equal(t, best.Airtime, ctx["best_airtime"])
}

func TestRunDigestIndependentOfWorkers(t *testing.T) {
	runner := NewRunner(log.Nop())

	serial := smallConfig()
	serial.Grid.Workers = 1
	a, err := runner.Run(context.Background(), serial)
	require.NoError(t, err)

	parallel := smallConfig()
	parallel.Grid.Workers = 8
	b, err := runner.Run(context.Background(), parallel)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Digest(), b.Digest())
}

func TestDigestDetectsChange(t *testing.T) {
	table := &Table{Rows: []Row{{Angle: 1, RPM: 2, Range: 3, Airtime: 4}}}
	before := table.Digest()
	table.Rows[0].Range = math.Nextafter(3, 4)
	assert.NotEqual(t, before, table.Digest())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(log.Nop()).Run(ctx, smallConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsOversizedGrid(t *testing.T) {
	cfg := smallConfig()
	cfg.Grid.RPM.Step = 1e-300

	var table *Table
	var err error
	assert.NotPanics(t, func() {
		table, err = NewRunner(log.Nop()).Run(context.Background(), cfg)
	})
	assert.Nil(t, table)
	assert.ErrorIs(t, err, ErrGridTooLarge)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Grid.RPM.Step = 0

	_, err := NewRunner(log.Nop()).Run(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
