package sim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func caseDate() time.Time {
	return time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
}

func TestCase_RecomputeAge(t *testing.T) {
	now := caseDate()
	c := &Case{FiledDate: now.AddDate(0, 0, -100)}
	assert.Equal(t, 100, c.RecomputeAge(now))
	assert.Equal(t, 100, c.AgeDays)

	// Filed in the future (clock skew in input data) clamps to zero.
	c = &Case{FiledDate: now.AddDate(0, 0, 3)}
	assert.Equal(t, 0, c.RecomputeAge(now))
}

func TestCase_RecordHearing(t *testing.T) {
	now := caseDate()
	c := &Case{Status: StatusPending}

	c.RecordHearing(now, false)
	assert.Equal(t, StatusAdjourned, c.Status)
	assert.Equal(t, 1, c.HearingCount)
	assert.Equal(t, now, c.LastHearingDate)

	next := now.AddDate(0, 0, 14)
	c.RecordHearing(next, true)
	assert.Equal(t, StatusPending, c.Status)
	assert.Equal(t, 2, c.HearingCount)
	assert.Equal(t, next, c.LastHearingDate)
}

func TestCase_DisposeIsIrreversible(t *testing.T) {
	now := caseDate()
	c := &Case{Status: StatusPending}

	c.Dispose(now)
	assert.True(t, c.Disposed())
	assert.Equal(t, now, c.DisposalDate)

	// A second Dispose must not move the disposal date.
	c.Dispose(now.AddDate(0, 0, 5))
	assert.Equal(t, now, c.DisposalDate)
}

func TestCase_AdjournmentBoost(t *testing.T) {
	now := caseDate()

	// Never heard: no boost.
	c := &Case{Status: StatusAdjourned}
	assert.Zero(t, c.AdjournmentBoost(now))

	// Heard but not adjourned: no boost.
	c = &Case{Status: StatusPending, LastHearingDate: now.AddDate(0, 0, -10)}
	assert.Zero(t, c.AdjournmentBoost(now))

	// Adjourned yesterday: near-full boost.
	c = &Case{Status: StatusAdjourned, LastHearingDate: now.AddDate(0, 0, -1)}
	want := math.Exp(-1.0 / recencyBoostDecayDays)
	assert.InDelta(t, want, c.AdjournmentBoost(now), 1e-9)

	// Adjourned long ago: boost decays toward zero.
	c = &Case{Status: StatusAdjourned, LastHearingDate: now.AddDate(0, 0, -210)}
	assert.Less(t, c.AdjournmentBoost(now), 0.001)
}

func TestCase_ComputeReadinessScore(t *testing.T) {
	now := caseDate()
	filed := now.AddDate(0, 0, -200)

	base := &Case{FiledDate: filed, Stage: StageEvidence}
	urgent := &Case{FiledDate: filed, Stage: StageEvidence, Urgent: true}

	baseScore := base.ComputeReadinessScore(now)
	urgentScore := urgent.ComputeReadinessScore(now)
	assert.InDelta(t, readinessUrgencyBonus, urgentScore-baseScore, 1e-9)

	// Recently adjourned cases outrank otherwise identical ones.
	adjourned := &Case{
		FiledDate:       filed,
		Stage:           StageEvidence,
		Status:          StatusAdjourned,
		LastHearingDate: now.AddDate(0, 0, -3),
	}
	assert.Greater(t, adjourned.ComputeReadinessScore(now), baseScore)

	// Later stages score higher than earlier at equal age.
	early := &Case{FiledDate: filed, Stage: StageAdmission}
	assert.Greater(t, baseScore, early.ComputeReadinessScore(now))

	// Score is cached on the case.
	assert.InDelta(t, baseScore, base.ReadinessScore, 1e-9)
}

func TestCase_DaysSinceLastHearing(t *testing.T) {
	now := caseDate()
	c := &Case{}
	assert.Equal(t, -1, c.DaysSinceLastHearing(now))

	c.LastHearingDate = now.AddDate(0, 0, -21)
	assert.Equal(t, 21, c.DaysSinceLastHearing(now))
}
