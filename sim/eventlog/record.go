// Package eventlog provides the append-only audit trail and daily metrics
// sinks for simulation runs. This package has no dependencies on sim/ — it
// stores pure data types plus their sinks, and downstream reporting tooling
// consumes its output as a CSV-compatible table.
package eventlog

import (
	"fmt"
	"strconv"
	"time"
)

// EventType identifies the kind of event a record describes.
type EventType string

const (
	EventFiling         EventType = "filing"
	EventScheduled      EventType = "scheduled"
	EventOutcome        EventType = "outcome"
	EventStageChange    EventType = "stage_change"
	EventDisposed       EventType = "disposed"
	EventRipenessChange EventType = "ripeness_change"
)

// dateLayout is the canonical date format for log rows.
const dateLayout = "2006-01-02"

// Header is the fixed column schema of the event log. Column order and the
// presence of every column (even when empty for a given event type) must be
// stable; reporting tooling depends on it.
var Header = []string{
	"date",
	"event_type",
	"case_id",
	"case_type",
	"stage",
	"courtroom_id",
	"detail",
	"priority_score",
	"age_days",
	"readiness_score",
	"urgent",
	"adjournment_boost",
	"ripeness",
	"days_since_last_hearing",
}

// Record is one immutable, write-once event log entry. Optional numeric
// annotations use pointers; nil renders as an empty cell.
type Record struct {
	Date        time.Time
	Type        EventType
	CaseID      string
	CaseType    string
	Stage       string
	CourtroomID string
	Detail      string

	PriorityScore        *float64
	AgeDays              *int
	ReadinessScore       *float64
	Urgent               *bool
	AdjournmentBoost     *float64
	Ripeness             string
	DaysSinceLastHearing *int
}

// Float returns a pointer to v, for optional annotation fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for optional annotation fields.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for optional annotation fields.
func Bool(v bool) *bool { return &v }

// Columns renders the record as one row in Header order.
func (r Record) Columns() []string {
	return []string{
		r.Date.Format(dateLayout),
		string(r.Type),
		r.CaseID,
		r.CaseType,
		r.Stage,
		r.CourtroomID,
		r.Detail,
		optFloat(r.PriorityScore),
		optInt(r.AgeDays),
		optFloat(r.ReadinessScore),
		optBool(r.Urgent),
		optFloat(r.AdjournmentBoost),
		r.Ripeness,
		optInt(r.DaysSinceLastHearing),
	}
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// MetricsHeader is the fixed column schema of the daily metrics file.
var MetricsHeader = []string{
	"date",
	"total_cases",
	"scheduled",
	"heard",
	"adjourned",
	"disposals",
	"utilization",
}

// MetricsRow is one aggregate row per simulated day, derived purely from
// the day's event records and never mutated after being written.
type MetricsRow struct {
	Date        time.Time
	TotalCases  int
	Scheduled   int
	Heard       int
	Adjourned   int
	Disposals   int // cumulative
	Utilization float64
}

// Columns renders the row in MetricsHeader order. Utilization is emitted
// with 4 decimal places.
func (m MetricsRow) Columns() []string {
	return []string{
		m.Date.Format(dateLayout),
		strconv.Itoa(m.TotalCases),
		strconv.Itoa(m.Scheduled),
		strconv.Itoa(m.Heard),
		strconv.Itoa(m.Adjourned),
		strconv.Itoa(m.Disposals),
		fmt.Sprintf("%.4f", m.Utilization),
	}
}
