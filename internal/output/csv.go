package output

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/zeusync/trajsweep/internal/sweep"
)

// CSVSink writes rows as comma separated values, header first.
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
	header bool
	closed bool
}

var _ Sink = (*CSVSink)(nil)

// NewCSVSink writes to w. If w is an io.Closer it is closed by Close.
func NewCSVSink(w io.Writer) *CSVSink {
	s := &CSVSink{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// CreateCSV creates (or truncates) the file at path.
func CreateCSV(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return NewCSVSink(f), nil
}

func (s *CSVSink) writeHeader() error {
	if s.header {
		return nil
	}
	s.header = true
	return s.w.Write(Header)
}

func (s *CSVSink) WriteRow(row sweep.Row) error {
	if s.closed {
		return ErrSinkClosed
	}
	if err := s.writeHeader(); err != nil {
		return err
	}
	return s.w.Write(record(row))
}

// Close flushes buffered rows. An empty table still gets its header.
func (s *CSVSink) Close() error {
	if s.closed {
		return nil
	}
	err := s.writeHeader()
	s.closed = true

	s.w.Flush()
	if err == nil {
		err = s.w.Error()
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
