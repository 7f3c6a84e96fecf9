package eventlog

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Sink is the backing store for event rows. Implementations must append all
// rows or none: a partially applied WriteRows leaves the audit trail
// inconsistent.
type Sink interface {
	WriteRows(rows [][]string) error
	Close() error
}

// Writer buffers event records in memory and appends them to its sink on
// Flush. Buffering within a day is an I/O optimization; the engine flushes
// exactly once per simulated day so durability is per-day, not per-run.
type Writer struct {
	sink Sink
	buf  []Record
}

// NewWriter creates a buffered Writer over a sink.
func NewWriter(sink Sink) *Writer {
	return &Writer{sink: sink}
}

// Append buffers one record.
func (w *Writer) Append(rec Record) {
	w.buf = append(w.buf, rec)
}

// Buffered returns the number of records awaiting flush.
func (w *Writer) Buffered() int {
	return len(w.buf)
}

// Flush appends all buffered records to the sink and clears the buffer.
// If the sink fails, the buffer is retained so no record is silently lost;
// the event log is the audit trail of record.
func (w *Writer) Flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(w.buf))
	for _, rec := range w.buf {
		rows = append(rows, rec.Columns())
	}
	if err := w.sink.WriteRows(rows); err != nil {
		return fmt.Errorf("flushing %d event records: %w", len(w.buf), err)
	}
	w.buf = w.buf[:0]
	return nil
}

// Close flushes any remaining records and closes the sink.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	return w.sink.Close()
}

// CSVSink appends rows to a CSV file. The first write to a new file
// initializes it with the header row.
type CSVSink struct {
	f *os.File
	w *csv.Writer
}

// NewCSVSink creates the file at path, truncating any existing content, and
// writes the event log header.
func NewCSVSink(path string) (*CSVSink, error) {
	return newCSVSink(path, Header)
}

func newCSVSink(path string, header []string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header to %s: %w", path, err)
	}
	return &CSVSink{f: f, w: w}, nil
}

// WriteRows appends all rows and flushes them to the file.
func (s *CSVSink) WriteRows(rows [][]string) error {
	for _, row := range rows {
		if err := s.w.Write(row); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

// Close closes the underlying file.
func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// MetricsWriter appends one row per simulated day to a CSV file.
type MetricsWriter struct {
	sink *CSVSink
}

// NewMetricsWriter creates the daily metrics file at path with its header.
func NewMetricsWriter(path string) (*MetricsWriter, error) {
	sink, err := newCSVSink(path, MetricsHeader)
	if err != nil {
		return nil, err
	}
	return &MetricsWriter{sink: sink}, nil
}

// Append writes one daily row immediately; metrics rows are tiny and the
// per-day durability contract applies to them too.
func (m *MetricsWriter) Append(row MetricsRow) error {
	return m.sink.WriteRows([][]string{row.Columns()})
}

// Close closes the metrics file.
func (m *MetricsWriter) Close() error {
	return m.sink.Close()
}
