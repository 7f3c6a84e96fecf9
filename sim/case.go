// Defines the Case struct that models an individual legal matter in the simulation.
// Tracks filing, procedural stage, hearing history, ripeness, and disposal.

package sim

import (
	"fmt"
	"math"
	"time"
)

// CaseStatus represents the lifecycle status of a case.
type CaseStatus string

const (
	StatusPending   CaseStatus = "PENDING"
	StatusScheduled CaseStatus = "SCHEDULED"
	StatusAdjourned CaseStatus = "ADJOURNED"
	StatusDisposed  CaseStatus = "DISPOSED"
)

// Readiness-score calibration. The score is a composite priority combining
// age, urgency, stage progress, and hearing recency.
const (
	// readinessAgeWeight converts case age in days into score units.
	readinessAgeWeight = 0.01

	// readinessUrgencyBonus is added for cases flagged urgent.
	readinessUrgencyBonus = 5.0

	// readinessAdjournBoostWeight scales the exponential recency boost
	// applied to previously adjourned cases.
	readinessAdjournBoostWeight = 2.0

	// recencyBoostDecayDays is the e-folding time of the recency boost:
	// boost = exp(-daysSinceLastHearing / recencyBoostDecayDays).
	recencyBoostDecayDays = 21.0
)

// readinessStageWeight rewards procedural progress: later stages are closer
// to disposal and get a higher base score.
var readinessStageWeight = map[Stage]float64{
	StageAdmission:        0.0,
	StageService:          0.2,
	StageWrittenStatement: 0.5,
	StageIssues:           0.8,
	StageEvidence:         1.2,
	StageArguments:        1.6,
	StageJudgment:         2.0,
}

// Case models a single legal matter's lifecycle in the simulation.
// Each case has:
// - identity (id, case type)
// - filing and hearing dates
// - procedural stage and status
// - ripeness gating state
// - derived age and readiness score, recomputed each candidate pass
type Case struct {
	ID   string // Unique case identifier
	Type string // Case type code (e.g. "RSA", "CCC")

	FiledDate         time.Time
	LastHearingDate   time.Time // zero value until the first hearing
	LastScheduledDate time.Time // zero value until first scheduled
	DisposalDate      time.Time // zero value until disposed

	Stage        Stage
	Status       CaseStatus
	HearingCount int

	Urgent bool // urgency flag set at filing

	// Procedural prerequisites inspected by the ripeness classifier.
	ServicePending bool // service of summons not yet complete
	Stayed         bool // proceedings stayed by a superior court

	// Derived fields, recomputed per simulated day. Not persisted across days.
	AgeDays        int
	ReadinessScore float64

	// Ripeness gating state. Updated by the engine whenever the classifier
	// output differs from the stored status.
	Ripeness          RipenessStatus
	RipenessReason    string
	RipenessChangedAt time.Time

	// StageReadyDate gates stage transitions: the case cannot leave its
	// current stage before this date. Seeded at engine construction and
	// refreshed on every stage change.
	StageReadyDate time.Time
}

// Disposed reports whether the case has reached its terminal status.
// Once true, the case is permanently excluded from scheduling.
func (c *Case) Disposed() bool {
	return c.Status == StatusDisposed
}

// RecomputeAge recalculates and caches the case's age in days relative to now.
func (c *Case) RecomputeAge(now time.Time) int {
	days := int(now.Sub(c.FiledDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	c.AgeDays = days
	return days
}

// AdjournmentBoost returns the exponential recency boost for previously
// adjourned cases: exp(-daysSinceLastHearing / 21). Zero for cases that were
// not adjourned at their last hearing or have never been heard.
func (c *Case) AdjournmentBoost(now time.Time) float64 {
	if c.Status != StatusAdjourned || c.LastHearingDate.IsZero() {
		return 0
	}
	days := now.Sub(c.LastHearingDate).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp(-days / recencyBoostDecayDays)
}

// ComputeReadinessScore recalculates and caches the composite readiness score.
// Must be called before the readiness policy orders candidates; the engine
// guarantees this and skips it for policies that do not need the score.
func (c *Case) ComputeReadinessScore(now time.Time) float64 {
	score := readinessAgeWeight * float64(c.RecomputeAge(now))
	score += readinessStageWeight[c.Stage]
	if c.Urgent {
		score += readinessUrgencyBonus
	}
	score += readinessAdjournBoostWeight * c.AdjournmentBoost(now)
	c.ReadinessScore = score
	return score
}

// DaysSinceLastHearing returns the number of whole days since the last
// hearing, or -1 if the case has never been heard.
func (c *Case) DaysSinceLastHearing(now time.Time) int {
	if c.LastHearingDate.IsZero() {
		return -1
	}
	return int(now.Sub(c.LastHearingDate).Hours() / 24)
}

// RecordHearing mutates the case for one hearing on the given date.
// heard=false records an adjournment (no procedural progress).
func (c *Case) RecordHearing(date time.Time, heard bool) {
	c.HearingCount++
	c.LastHearingDate = date
	if heard {
		c.Status = StatusPending
	} else {
		c.Status = StatusAdjourned
	}
}

// Dispose performs the irreversible terminal transition.
// Calling Dispose on an already-disposed case is a no-op.
func (c *Case) Dispose(date time.Time) {
	if c.Disposed() {
		return
	}
	c.Status = StatusDisposed
	c.DisposalDate = date
}

// String returns a human-readable representation of a Case.
func (c Case) String() string {
	return fmt.Sprintf("Case: (ID: %s, Type: %s, Stage: %s, Status: %s, Hearings: %d)",
		c.ID, c.Type, c.Stage, c.Status, c.HearingCount)
}
