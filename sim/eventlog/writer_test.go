package eventlog

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	rows   [][]string
	fail   bool
	closed bool
}

func (c *captureSink) WriteRows(rows [][]string) error {
	if c.fail {
		return errors.New("disk full")
	}
	c.rows = append(c.rows, rows...)
	return nil
}

func (c *captureSink) Close() error {
	c.closed = true
	return nil
}

func sampleRecord() Record {
	return Record{
		Date:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Type:        EventScheduled,
		CaseID:      "RSA-2020-0001",
		CaseType:    "RSA",
		Stage:       "evidence",
		CourtroomID: "court_01",
		Detail:      "listed for hearing",
	}
}

func TestWriter_FlushClearsBuffer(t *testing.T) {
	sink := &captureSink{}
	w := NewWriter(sink)

	w.Append(sampleRecord())
	w.Append(sampleRecord())
	assert.Equal(t, 2, w.Buffered())

	require.NoError(t, w.Flush())
	assert.Zero(t, w.Buffered())
	assert.Len(t, sink.rows, 2)

	// Flushing an empty buffer is a no-op.
	require.NoError(t, w.Flush())
	assert.Len(t, sink.rows, 2)
}

func TestWriter_FailedFlushRetainsBuffer(t *testing.T) {
	sink := &captureSink{fail: true}
	w := NewWriter(sink)

	w.Append(sampleRecord())
	err := w.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, w.Buffered(), "records must survive a failed flush")

	// Once the sink recovers, the retained records go through.
	sink.fail = false
	require.NoError(t, w.Flush())
	assert.Zero(t, w.Buffered())
	assert.Len(t, sink.rows, 1)
}

func TestWriter_CloseFlushesAndClosesSink(t *testing.T) {
	sink := &captureSink{}
	w := NewWriter(sink)
	w.Append(sampleRecord())

	require.NoError(t, w.Close())
	assert.Len(t, sink.rows, 1)
	assert.True(t, sink.closed)
}

func TestRecord_ColumnsMatchHeader(t *testing.T) {
	// Sparse record: optional annotations render as empty cells, but the
	// column count never changes.
	sparse := sampleRecord()
	cols := sparse.Columns()
	require.Len(t, cols, len(Header))
	assert.Equal(t, "2024-03-04", cols[0])
	assert.Equal(t, "scheduled", cols[1])
	assert.Empty(t, cols[7], "priority_score unset")
	assert.Empty(t, cols[10], "urgent unset")
	assert.Empty(t, cols[13], "days_since_last_hearing unset")

	full := sparse
	full.PriorityScore = Float(12.34567)
	full.AgeDays = Int(812)
	full.ReadinessScore = Float(9.5)
	full.Urgent = Bool(true)
	full.AdjournmentBoost = Float(0.25)
	full.Ripeness = "ripe"
	full.DaysSinceLastHearing = Int(14)

	cols = full.Columns()
	require.Len(t, cols, len(Header))
	assert.Equal(t, "12.3457", cols[7], "floats carry 4 decimal places")
	assert.Equal(t, "812", cols[8])
	assert.Equal(t, "true", cols[10])
	assert.Equal(t, "ripe", cols[12])
	assert.Equal(t, "14", cols[13])
}

func TestMetricsRow_Columns(t *testing.T) {
	row := MetricsRow{
		Date:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalCases:  500,
		Scheduled:   75,
		Heard:       50,
		Adjourned:   25,
		Disposals:   3,
		Utilization: 2.0 / 3.0,
	}
	cols := row.Columns()
	require.Len(t, cols, len(MetricsHeader))
	assert.Equal(t, []string{"2024-03-04", "500", "75", "50", "25", "3", "0.6667"}, cols)
}

func TestCSVSink_WritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	sink, err := NewCSVSink(path)
	require.NoError(t, err)

	w := NewWriter(sink)
	w.Append(sampleRecord())
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "RSA-2020-0001", rows[1][2])
}

func TestMetricsWriter_AppendsImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_metrics.csv")
	mw, err := NewMetricsWriter(path)
	require.NoError(t, err)

	require.NoError(t, mw.Append(MetricsRow{
		Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), TotalCases: 10,
	}))
	require.NoError(t, mw.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, MetricsHeader, rows[0])
	assert.Equal(t, "10", rows[1][1])
}
