package output

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/trajsweep/internal/sweep"
)

func sampleTable() *sweep.Table {
	return &sweep.Table{
		RunID: "test",
		Rows: []sweep.Row{
			{Angle: 57, RPM: 3500, Range: math.NaN(), Airtime: math.NaN()},
			{Angle: 57, RPM: 3550, Range: 1.25, Airtime: 0.875},
		},
	}
}

func TestCSVSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf)

	require.NoError(t, WriteTable(sink, sampleTable()))
	require.NoError(t, sink.Close())

	want := "angle,rpm,range,airtime\n" +
		"57,3500,NaN,NaN\n" +
		"57,3550,1.25,0.875\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVSinkEmptyTableHasHeader(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf)
	require.NoError(t, sink.Close())
	assert.Equal(t, "angle,rpm,range,airtime\n", buf.String())
}

func TestCSVSinkClosed(t *testing.T) {
	sink := NewCSVSink(&bytes.Buffer{})
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())
	assert.ErrorIs(t, sink.WriteRow(sweep.Row{}), ErrSinkClosed)
}

func TestCreateCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.csv")
	sink, err := CreateCSV(path)
	require.NoError(t, err)

	require.NoError(t, WriteTable(sink, sampleTable()))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "57,3550,1.25,0.875")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "NaN", FormatFloat(math.NaN()))
	assert.Equal(t, "76", FormatFloat(76))
	assert.Equal(t, "0.1", FormatFloat(0.1))
	assert.Equal(t, "-2.5", FormatFloat(-2.5))
}
