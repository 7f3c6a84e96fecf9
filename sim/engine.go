// sim/engine.go
//
// The daily scheduling loop: ripeness re-evaluation, candidate filtering,
// policy ordering, courtroom allocation, stochastic outcome sampling, stage
// progression, disposal detection, and event/metrics emission.

package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/court-sim/court-sim/sim/eventlog"
)

// DefaultMinHearingGapDays is the default minimum-gap eligibility rule:
// a case is eligible only if this many days have elapsed since its last
// hearing, preventing back-to-back listings of the same case.
const DefaultMinHearingGapDays = 7

// ripenessEvalIntervalDays is the period of the batch ripeness
// re-evaluation, measured in elapsed calendar days since the last batch,
// not in simulated-day counts.
const ripenessEvalIntervalDays = 7

// Config holds the simulation run parameters.
type Config struct {
	StartDate         time.Time
	Days              int // number of working days to simulate
	Seed              int64
	MinHearingGapDays int
	Percentile        Percentile
	Policy            string
	DailyFilingRate   float64     // expected new filings per day; 0 disables
	Holidays          []time.Time // court holidays (zero effective capacity)
}

// Validate fails fast on malformed configuration, before any simulation day
// executes.
func (c Config) Validate() error {
	if c.StartDate.IsZero() {
		return fmt.Errorf("start date must be set")
	}
	if c.Days <= 0 {
		return fmt.Errorf("day count must be positive, got %d", c.Days)
	}
	if c.MinHearingGapDays < 0 {
		return fmt.Errorf("minimum hearing gap must be >= 0, got %d", c.MinHearingGapDays)
	}
	if !IsValidPercentile(string(c.Percentile)) {
		return fmt.Errorf("unknown duration percentile %q", c.Percentile)
	}
	if !IsValidPolicy(c.Policy) {
		return fmt.Errorf("unknown scheduling policy %q", c.Policy)
	}
	if c.DailyFilingRate < 0 {
		return fmt.Errorf("daily filing rate must be >= 0, got %g", c.DailyFilingRate)
	}
	return nil
}

// FilingFunc creates a new mid-simulation filing. seq is a monotonically
// increasing sequence number for id generation; draws come from the
// engine's shared RNG stream.
type FilingFunc func(date time.Time, seq int, rng *rand.Rand) *Case

// Simulator orchestrates the day-by-day court simulation. It exclusively
// owns the case slice and the seeded RNG for the duration of a run; callers
// must not retain references that are mutated concurrently, and no two runs
// may share a case list instance.
type Simulator struct {
	cfg Config

	cases      []*Case
	courtrooms []*Courtroom // sorted by id
	calendar   *Calendar
	policy     SchedulingPolicy
	allocator  *Allocator
	params     ParameterStore
	rng        *rand.Rand

	events     *eventlog.Writer
	metricsOut *eventlog.MetricsWriter // optional

	Metrics *Metrics

	clock            time.Time
	lastRipenessEval time.Time
	filingFn         FilingFunc
	filingSeq        int
}

// NewSimulator validates the configuration and constructs a simulator.
// Each case's initial stage-ready date is seeded from its hearing history
// (or filed date) plus the typical duration of its current stage, floored
// at one day. The RNG is seeded once here; every stochastic decision in the
// run draws from this single stream for full reproducibility.
func NewSimulator(cfg Config, cases []*Case, rooms []*Courtroom, params ParameterStore,
	events *eventlog.Writer, metricsOut *eventlog.MetricsWriter) (*Simulator, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if events == nil {
		return nil, fmt.Errorf("event writer must be set")
	}

	allocator := NewAllocator(rooms)
	s := &Simulator{
		cfg:              cfg,
		cases:            cases,
		courtrooms:       allocator.rooms,
		calendar:         NewCalendar(cfg.Holidays),
		policy:           NewSchedulingPolicy(cfg.Policy),
		allocator:        allocator,
		params:           params,
		rng:              rand.New(rand.NewSource(cfg.Seed)),
		events:           events,
		metricsOut:       metricsOut,
		Metrics:          NewMetrics(),
		lastRipenessEval: cfg.StartDate,
	}

	for _, c := range s.cases {
		s.seedStageReadyDate(c)
	}
	return s, nil
}

// SetFilingFunc enables mid-simulation filings (used together with
// Config.DailyFilingRate).
func (s *Simulator) SetFilingFunc(fn FilingFunc) {
	s.filingFn = fn
}

// seedStageReadyDate initializes the stage-duration gate for a case.
func (s *Simulator) seedStageReadyDate(c *Case) {
	base := c.FiledDate
	if !c.LastHearingDate.IsZero() {
		base = c.LastHearingDate
	}
	c.StageReadyDate = base.AddDate(0, 0, s.stageDurationDays(c.Stage))
}

// stageDurationDays returns the typical duration for a stage at the
// configured percentile, floored at one day.
func (s *Simulator) stageDurationDays(stage Stage) int {
	d := int(s.params.StageDuration(stage, s.cfg.Percentile))
	if d < 1 {
		d = 1
	}
	return d
}

// Run executes the configured number of working days and returns the
// aggregate result. Weekends are skipped; holidays fall on working days and
// are simulated with zero effective capacity.
func (s *Simulator) Run() (*SimulationResult, error) {
	logrus.Infof("Starting simulation: %d cases, %d courtrooms, policy=%s, seed=%d",
		len(s.cases), len(s.courtrooms), s.policy.Name(), s.cfg.Seed)

	date := s.cfg.StartDate
	simulated := 0
	for simulated < s.cfg.Days {
		if !s.calendar.Weekday(date) {
			date = date.AddDate(0, 0, 1)
			continue
		}
		if err := s.simulateDay(date); err != nil {
			return nil, err
		}
		s.clock = date
		simulated++
		date = date.AddDate(0, 0, 1)
	}

	logrus.Infof("Simulation ended at %s: %d hearings, %d disposals",
		s.clock.Format("2006-01-02"), s.Metrics.HearingsTotal, s.Metrics.Disposals)

	return &SimulationResult{
		RunID:               uuid.NewString(),
		Policy:              s.policy.Name(),
		HearingsTotal:       s.Metrics.HearingsTotal,
		HearingsHeard:       s.Metrics.HearingsHeard,
		HearingsAdjourned:   s.Metrics.HearingsAdjourned,
		Disposals:           s.Metrics.Disposals,
		Utilization:         s.Metrics.Utilization(),
		EndDate:             s.clock,
		RipenessTransitions: s.Metrics.RipenessTransitions,
		UnripeFiltered:      s.Metrics.UnripeFiltered,
		CapacityRejected:    s.Metrics.CapacityRejected + s.allocator.CapacityRejections,
	}, nil
}

// Gini returns the load-balance fairness of the run so far.
func (s *Simulator) Gini() float64 {
	return s.allocator.Gini()
}

// simulateDay runs the per-day state machine in order:
// batch ripeness re-evaluation, filings, candidate build, per-candidate
// reclassification, gap eligibility, policy ordering, capacity truncation,
// allocation, outcome sampling, utilization recording, metrics emission,
// and the per-day event flush.
func (s *Simulator) simulateDay(date time.Time) error {
	// 1. Periodic batch ripeness re-evaluation. Runs alongside the per-day
	// per-candidate reclassification below; the two are intentionally not
	// deduplicated because downstream event timing depends on both.
	if date.Sub(s.lastRipenessEval) >= ripenessEvalIntervalDays*24*time.Hour {
		for _, c := range s.cases {
			if c.Disposed() {
				continue
			}
			s.reclassify(c, date)
		}
		s.lastRipenessEval = date
	}

	s.fileNewCases(date)

	// 2. Candidate set: all non-disposed cases, ages (and readiness scores,
	// when the policy needs them) recomputed.
	needsScore := s.policy.NeedsReadinessScore()
	candidates := make([]*Case, 0, len(s.cases))
	for _, c := range s.cases {
		if c.Disposed() {
			continue
		}
		c.RecomputeAge(date)
		if needsScore {
			c.ComputeReadinessScore(date)
		}
		candidates = append(candidates, c)
	}

	// 3. Same-day reclassification of every candidate.
	ripe := make([]*Case, 0, len(candidates))
	for _, c := range candidates {
		status := s.reclassify(c, date)
		if Schedulable(status) {
			ripe = append(ripe, c)
		} else {
			s.Metrics.UnripeFiltered++
		}
	}

	// 4. Minimum-gap eligibility.
	eligible := make([]*Case, 0, len(ripe))
	for _, c := range ripe {
		if gap := c.DaysSinceLastHearing(date); gap >= 0 && gap < s.cfg.MinHearingGapDays {
			continue
		}
		eligible = append(eligible, c)
	}

	// 5. Policy ordering.
	ordered := s.policy.Prioritize(eligible, date)

	// 6. Truncate to the day's total capacity, then allocate.
	totalCap := 0
	for _, r := range s.courtrooms {
		totalCap += r.EffectiveCapacity(date, s.calendar)
	}
	s.Metrics.CapacityOffered += totalCap
	if len(ordered) > totalCap {
		s.Metrics.CapacityRejected += len(ordered) - totalCap
		ordered = ordered[:totalCap]
	}
	assignment := s.allocator.Allocate(ordered, date, s.calendar)

	// 7. Outcome sampling, per courtroom in id order.
	heardToday, adjournedToday := 0, 0
	for _, room := range s.courtrooms {
		heardInRoom := 0
		for _, c := range assignment.ByRoom[room.ID] {
			if c.Disposed() {
				// Defensive: disposed between allocation and sampling.
				continue
			}
			heard := s.holdHearing(c, room, date)
			if heard {
				heardInRoom++
				heardToday++
			} else {
				adjournedToday++
			}
		}
		// 8. Per-courtroom utilization records actual heard counts.
		room.RecordHeard(date, heardInRoom)
	}

	// 9. Daily metrics row, then the once-per-day event flush.
	utilization := 0.0
	if totalCap > 0 {
		utilization = float64(heardToday) / float64(totalCap)
	}
	row := eventlog.MetricsRow{
		Date:        date,
		TotalCases:  len(candidates),
		Scheduled:   assignment.Assigned(),
		Heard:       heardToday,
		Adjourned:   adjournedToday,
		Disposals:   s.Metrics.Disposals,
		Utilization: utilization,
	}
	s.Metrics.Daily = append(s.Metrics.Daily, row)
	if s.metricsOut != nil {
		if err := s.metricsOut.Append(row); err != nil {
			return fmt.Errorf("writing metrics row for %s: %w", date.Format("2006-01-02"), err)
		}
	}
	if err := s.events.Flush(); err != nil {
		return err
	}

	logrus.Debugf("[%s] candidates=%d scheduled=%d heard=%d adjourned=%d disposals=%d",
		date.Format("2006-01-02"), len(candidates), assignment.Assigned(),
		heardToday, adjournedToday, s.Metrics.Disposals)
	return nil
}

// fileNewCases injects mid-simulation filings when enabled.
func (s *Simulator) fileNewCases(date time.Time) {
	if s.cfg.DailyFilingRate <= 0 || s.filingFn == nil {
		return
	}
	n := int(s.cfg.DailyFilingRate)
	if frac := s.cfg.DailyFilingRate - float64(n); frac > 0 && s.rng.Float64() < frac {
		n++
	}
	for i := 0; i < n; i++ {
		c := s.filingFn(date, s.filingSeq, s.rng)
		s.filingSeq++
		s.seedStageReadyDate(c)
		s.cases = append(s.cases, c)
		s.events.Append(eventlog.Record{
			Date:     date,
			Type:     eventlog.EventFiling,
			CaseID:   c.ID,
			CaseType: c.Type,
			Stage:    string(c.Stage),
			Detail:   "filed",
			Urgent:   eventlog.Bool(c.Urgent),
		})
	}
}

// reclassify runs the pure classifier and persists a status change on the
// case, emitting a ripeness_change event only when the canonical string
// value differs from the previously recorded status.
func (s *Simulator) reclassify(c *Case, date time.Time) RipenessStatus {
	status := Classify(c, date)
	if string(status) == string(c.Ripeness) {
		return status
	}
	c.Ripeness = status
	c.RipenessReason = RipenessReason(status)
	c.RipenessChangedAt = date
	s.Metrics.RipenessTransitions++
	s.events.Append(eventlog.Record{
		Date:     date,
		Type:     eventlog.EventRipenessChange,
		CaseID:   c.ID,
		CaseType: c.Type,
		Stage:    string(c.Stage),
		Detail:   RipenessReason(status),
		Ripeness: string(status),
	})
	return status
}

// holdHearing marks the case scheduled, samples the adjournment outcome,
// and on a heard hearing applies disposal and stage-progression rules.
// Returns true when the hearing was heard.
func (s *Simulator) holdHearing(c *Case, room *Courtroom, date time.Time) bool {
	c.Status = StatusScheduled
	c.LastScheduledDate = date
	s.Metrics.HearingsTotal++
	s.appendScheduledEvent(c, room, date)

	adjournProb := s.params.AdjournmentProb(c.Stage, c.Type)
	if s.rng.Float64() < adjournProb {
		c.RecordHearing(date, false)
		s.Metrics.HearingsAdjourned++
		s.appendOutcomeEvent(c, room, date, "adjourned")
		return false
	}

	c.RecordHearing(date, true)
	s.Metrics.HearingsHeard++
	s.appendOutcomeEvent(c, room, date, "heard")

	// a. Natural disposal first; if disposed, the case is done for the day.
	if s.rng.Float64() < DisposalProbability(c, date, s.params) {
		s.dispose(c, room.ID, date, "natural disposal")
		return true
	}

	// b. Stage progression, gated by the stage-ready date.
	if !date.Before(c.StageReadyDate) {
		s.progressStage(c, room, date)
	}
	// c. Gate not elapsed: stage and stage-ready date unchanged.
	return true
}

// progressStage samples the next stage from the cumulative transition table
// and applies it.
func (s *Simulator) progressStage(c *Case, room *Courtroom, date time.Time) {
	table := s.params.StageTransitions(c.Stage)
	if len(table) == 0 {
		return
	}
	draw := s.rng.Float64()
	next := table[len(table)-1].Next
	for _, t := range table {
		if t.CumProb >= draw {
			next = t.Next
			break
		}
	}

	if next != c.Stage {
		prev := c.Stage
		c.Stage = next
		s.events.Append(eventlog.Record{
			Date:        date,
			Type:        eventlog.EventStageChange,
			CaseID:      c.ID,
			CaseType:    c.Type,
			Stage:       string(next),
			CourtroomID: room.ID,
			Detail:      fmt.Sprintf("%s -> %s", prev, next),
		})
	}
	if next.Terminal() || c.Disposed() {
		s.dispose(c, room.ID, date, "terminal stage")
		return
	}
	c.StageReadyDate = date.AddDate(0, 0, s.stageDurationDays(next))
}

// dispose performs the terminal transition and emits the disposed event.
func (s *Simulator) dispose(c *Case, roomID string, date time.Time, detail string) {
	if c.Disposed() {
		return
	}
	c.Dispose(date)
	s.Metrics.Disposals++
	s.Metrics.DisposalAgeDays = append(s.Metrics.DisposalAgeDays, float64(c.RecomputeAge(date)))
	s.events.Append(eventlog.Record{
		Date:        date,
		Type:        eventlog.EventDisposed,
		CaseID:      c.ID,
		CaseType:    c.Type,
		Stage:       string(c.Stage),
		CourtroomID: roomID,
		Detail:      detail,
		AgeDays:     eventlog.Int(c.AgeDays),
	})
}

func (s *Simulator) appendScheduledEvent(c *Case, room *Courtroom, date time.Time) {
	rec := eventlog.Record{
		Date:           date,
		Type:           eventlog.EventScheduled,
		CaseID:         c.ID,
		CaseType:       c.Type,
		Stage:          string(c.Stage),
		CourtroomID:    room.ID,
		Detail:         "listed for hearing",
		AgeDays:        eventlog.Int(c.AgeDays),
		Urgent:         eventlog.Bool(c.Urgent),
		Ripeness:       string(c.Ripeness),
		PriorityScore:  eventlog.Float(s.priorityOf(c)),
		ReadinessScore: eventlog.Float(c.ReadinessScore),
	}
	if boost := c.AdjournmentBoost(date); boost > 0 {
		rec.AdjournmentBoost = eventlog.Float(boost)
	}
	if gap := c.DaysSinceLastHearing(date); gap >= 0 {
		rec.DaysSinceLastHearing = eventlog.Int(gap)
	}
	s.events.Append(rec)
}

func (s *Simulator) appendOutcomeEvent(c *Case, room *Courtroom, date time.Time, detail string) {
	s.events.Append(eventlog.Record{
		Date:        date,
		Type:        eventlog.EventOutcome,
		CaseID:      c.ID,
		CaseType:    c.Type,
		Stage:       string(c.Stage),
		CourtroomID: room.ID,
		Detail:      detail,
	})
}

// priorityOf reports the score the active policy ordered this case by, for
// event annotation.
func (s *Simulator) priorityOf(c *Case) float64 {
	if s.policy.NeedsReadinessScore() {
		return c.ReadinessScore
	}
	return float64(c.AgeDays)
}
