package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticParameterStore_StageDuration(t *testing.T) {
	s := NewStaticParameterStore()
	for _, stage := range []Stage{StageAdmission, StageService, StageWrittenStatement,
		StageIssues, StageEvidence, StageArguments, StageJudgment} {
		median := s.StageDuration(stage, PercentileMedian)
		p90 := s.StageDuration(stage, PercentileP90)
		assert.Greater(t, median, 0.0, "stage %s", stage)
		assert.Greater(t, p90, median, "p90 must exceed median for stage %s", stage)
	}

	// Unknown stages get the default duration rather than zero.
	assert.Greater(t, s.StageDuration(Stage("transferred"), PercentileMedian), 0.0)
}

func TestStaticParameterStore_AdjournmentProb(t *testing.T) {
	s := NewStaticParameterStore()
	for _, stage := range AllStages {
		for _, caseType := range []string{"RSA", "CCC", "OS", "MC", "unknown"} {
			p := s.AdjournmentProb(stage, caseType)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 0.95)
		}
	}
	// Type modifiers order probabilities within a stage.
	assert.Greater(t,
		s.AdjournmentProb(StageEvidence, "RSA"),
		s.AdjournmentProb(StageEvidence, "CCC"))
}

func TestStaticParameterStore_TransitionsAreCumulative(t *testing.T) {
	s := NewStaticParameterStore()
	for _, stage := range []Stage{StageAdmission, StageService, StageWrittenStatement,
		StageIssues, StageEvidence, StageArguments, StageJudgment} {
		table := s.StageTransitions(stage)
		require.NotEmpty(t, table, "stage %s has no transitions", stage)

		prev := 0.0
		for _, tr := range table {
			assert.Greater(t, tr.CumProb, prev, "stage %s table not strictly increasing", stage)
			prev = tr.CumProb
		}
		assert.InDelta(t, 1.0, table[len(table)-1].CumProb, 1e-9,
			"stage %s table must end at 1.0", stage)
	}

	// Terminal stages have no transitions out.
	assert.Empty(t, s.StageTransitions(StageDisposed))
	assert.Empty(t, s.StageTransitions(StageDismissed))
}

func TestStaticParameterStore_CaseTypeStats(t *testing.T) {
	s := NewStaticParameterStore()

	stats, err := s.CaseTypeStats("CCC")
	require.NoError(t, err)
	assert.Greater(t, stats.DisposalMedianDays, 0.0)
	assert.Greater(t, stats.HearingMedian, 0.0)

	_, err = s.CaseTypeStats("nope")
	assert.Error(t, err)
}

func TestStaticParameterStore_TransitionProb(t *testing.T) {
	s := NewStaticParameterStore()

	// Judgment transitions to disposed with certainty.
	assert.InDelta(t, 1.0, s.TransitionProb(StageJudgment, StageDisposed), 1e-9)

	// Admission -> service carries the first cumulative slice.
	assert.InDelta(t, 0.70, s.TransitionProb(StageAdmission, StageService), 1e-9)

	// Unlisted pairs have zero probability.
	assert.Zero(t, s.TransitionProb(StageAdmission, StageJudgment))
	assert.Zero(t, s.TransitionProb(StageDisposed, StageAdmission))
}

func TestIsValidPercentile(t *testing.T) {
	assert.True(t, IsValidPercentile("median"))
	assert.True(t, IsValidPercentile("p90"))
	assert.False(t, IsValidPercentile("p50"))
	assert.False(t, IsValidPercentile(""))
}
