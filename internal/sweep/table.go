package sweep

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Row is one angle/rpm combination. Range and Airtime are NaN when the
// trajectory never came down through the goal height.
type Row struct {
	Angle   float64 // deg
	RPM     float64
	Speed   float64 // m/s exit velocity from the launcher
	Range   float64 // m
	Airtime float64 // s
}

func (r Row) Resolved() bool {
	return !math.IsNaN(r.Range) && !math.IsNaN(r.Airtime)
}

// Table holds the rows of one sweep in angle-major, rpm-minor order.
type Table struct {
	RunID string
	Rows  []Row
}

type Stats struct {
	Rows       int
	Resolved   int
	Unresolved int
}

func (t *Table) Stats() Stats {
	s := Stats{Rows: len(t.Rows)}
	for _, row := range t.Rows {
		if row.Resolved() {
			s.Resolved++
		}
	}
	s.Unresolved = s.Rows - s.Resolved
	return s
}

// Digest hashes the bit patterns of every row. Two sweeps with identical
// configuration produce the same digest regardless of worker count.
func (t *Table) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	for _, row := range t.Rows {
		for _, v := range [...]float64{row.Angle, row.RPM, row.Range, row.Airtime} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// Best returns the resolved row with the shortest airtime.
func (t *Table) Best() (Row, bool) {
	var best Row
	found := false
	for _, row := range t.Rows {
		if !row.Resolved() {
			continue
		}
		if !found || row.Airtime < best.Airtime {
			best = row
			found = true
		}
	}
	return best, found
}
