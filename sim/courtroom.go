package sim

import (
	"fmt"
	"time"
)

// dateKey formats a date as the canonical per-day map key.
const dateKey = "2006-01-02"

// Calendar decides which dates are working days. Weekends are always
// non-working; explicit holiday dates reduce effective capacity to zero
// while still being simulated.
type Calendar struct {
	holidays map[string]bool
}

// NewCalendar creates a Calendar with the given holiday dates.
func NewCalendar(holidays []time.Time) *Calendar {
	m := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		m[h.Format(dateKey)] = true
	}
	return &Calendar{holidays: m}
}

// Weekday reports whether the date falls Monday through Friday.
func (cal *Calendar) Weekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDay reports whether courtrooms sit on the given date.
func (cal *Calendar) WorkingDay(d time.Time) bool {
	if !cal.Weekday(d) {
		return false
	}
	return !cal.holidays[d.Format(dateKey)]
}

// Courtroom is a daily-capacity-bounded resource, exclusively owned by one
// simulation run. Tracks cases actually heard per day for reporting, not
// merely scheduled.
type Courtroom struct {
	ID            string
	JudgeID       string // informational only
	DailyCapacity int

	heardByDate map[string]int
}

// NewCourtroom creates a courtroom with the given id and daily capacity.
func NewCourtroom(id, judgeID string, dailyCapacity int) *Courtroom {
	return &Courtroom{
		ID:            id,
		JudgeID:       judgeID,
		DailyCapacity: dailyCapacity,
		heardByDate:   make(map[string]int),
	}
}

// NewCourtroomPool creates n courtrooms with uniform capacity and
// sequential ids.
func NewCourtroomPool(n, dailyCapacity int) []*Courtroom {
	rooms := make([]*Courtroom, 0, n)
	for i := 0; i < n; i++ {
		rooms = append(rooms, NewCourtroom(
			fmt.Sprintf("court_%02d", i+1),
			fmt.Sprintf("judge_%02d", i+1),
			dailyCapacity,
		))
	}
	return rooms
}

// EffectiveCapacity returns the courtroom's capacity for a date: zero on
// non-working days, DailyCapacity otherwise.
func (r *Courtroom) EffectiveCapacity(date time.Time, cal *Calendar) int {
	if !cal.WorkingDay(date) {
		return 0
	}
	return r.DailyCapacity
}

// RecordHeard adds to the courtroom's heard count for a date.
func (r *Courtroom) RecordHeard(date time.Time, n int) {
	r.heardByDate[date.Format(dateKey)] += n
}

// HeardOn returns the number of cases actually heard on a date.
func (r *Courtroom) HeardOn(date time.Time) int {
	return r.heardByDate[date.Format(dateKey)]
}

// TotalHeard returns the courtroom's cumulative heard count over the run.
func (r *Courtroom) TotalHeard() int {
	total := 0
	for _, n := range r.heardByDate {
		total += n
	}
	return total
}
