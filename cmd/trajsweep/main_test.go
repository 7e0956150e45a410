package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/trajsweep/internal/core/observability/log"
	"github.com/zeusync/trajsweep/internal/sweep"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunWritesCSV(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sweep.yaml")
	outPath := filepath.Join(dir, "out.csv")

	doc := "sweep:\n  angle: {start: 70, end: 71, step: 1}\n  rpm: {start: 5000, end: 6000, step: 500}\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(configPath, []byte(doc), 0o644))

	o, err := parseFlags([]string{"-config", configPath, "-out", outPath, "-workers", "1"})
	require.NoError(t, err)
	require.NoError(t, run(context.Background(), o))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1+2*3)
	assert.Equal(t, "angle,rpm,range,airtime", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "70,5000,"))
	assert.True(t, strings.HasPrefix(lines[6], "71,6000,"))
}

func TestLoadConfigOverrides(t *testing.T) {
	o, err := parseFlags([]string{"-out", "x.csv", "-log-level", "debug", "-workers", "3"})
	require.NoError(t, err)

	cfg, err := loadConfig(o)
	require.NoError(t, err)
	assert.Equal(t, "x.csv", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Grid.Workers)
}

func TestLoadConfigMissingFile(t *testing.T) {
	o, err := parseFlags([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)

	_, err = loadConfig(o)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTraceWritesSteps(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := log.NewFromZap(zap.New(core), log.LevelDebug)

	cfg := sweep.DefaultConfig()
	var buf bytes.Buffer
	require.NoError(t, trace(cfg, logger, &buf, 6000, 72))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "time,x,y,vx,vy", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "0.01,"))

	steps := logs.FilterMessage("Step").All()
	assert.Len(t, steps, len(lines)-1)
	assert.Contains(t, steps[0].ContextMap()["position"], "(")

	traced := logs.FilterMessage("Trajectory traced").All()
	require.Len(t, traced, 1)
	ctx := traced[0].ContextMap()
	assert.Equal(t, true, ctx["resolved"])
	assert.Equal(t, int64(len(lines)-1), ctx["steps"])
}

func TestParseTraceFlags(t *testing.T) {
	o, err := parseFlags([]string{"-trace-rpm", "5000", "-trace-angle", "65"})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, o.traceRPM)
	assert.Equal(t, 65.0, o.traceAngle)
}
