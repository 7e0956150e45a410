package output

import (
	"errors"
	"math"
	"strconv"

	"github.com/zeusync/trajsweep/internal/sweep"
)

// Header is the column layout of every sweep table.
var Header = []string{"angle", "rpm", "range", "airtime"}

var ErrSinkClosed = errors.New("sink is closed")

// Sink consumes sweep rows in order.
type Sink interface {
	WriteRow(row sweep.Row) error
	Close() error
}

// WriteTable writes all rows of the table to the sink. It does not close the sink.
func WriteTable(sink Sink, table *sweep.Table) error {
	for _, row := range table.Rows {
		if err := sink.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// FormatFloat renders the shortest representation that parses back to v.
// NaN is written as "NaN".
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func record(row sweep.Row) []string {
	return []string{
		FormatFloat(row.Angle),
		FormatFloat(row.RPM),
		FormatFloat(row.Range),
		FormatFloat(row.Airtime),
	}
}
