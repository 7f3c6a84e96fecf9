// Read-only lookup of empirically derived stage durations, adjournment
// probabilities, and stage-transition distributions. The simulation engine
// consumes this interface only; the estimation pipeline that fits the tables
// from historical records lives outside this repository.

package sim

import "fmt"

// Percentile selects which fitted duration percentile the engine uses for
// stage-ready gating.
type Percentile string

const (
	PercentileMedian Percentile = "median"
	PercentileP90    Percentile = "p90"
)

// IsValidPercentile returns true if the given string is a recognized
// duration percentile selector.
func IsValidPercentile(p string) bool {
	switch Percentile(p) {
	case PercentileMedian, PercentileP90:
		return true
	}
	return false
}

// StageTransition is one entry of a cumulative-probability transition table.
// Entries are ordered; the first entry whose CumProb is >= a uniform draw is
// taken, with the last entry as fallback.
type StageTransition struct {
	Next    Stage
	CumProb float64
}

// CaseTypeStats holds historical per-case-type medians used by the
// natural-disposal heuristic.
type CaseTypeStats struct {
	DisposalMedianDays float64 // median days from filing to disposal
	HearingMedian      float64 // median hearing count to disposal
}

// ParameterStore is the read-only query interface for empirically fit
// simulation parameters, keyed by case type and stage.
type ParameterStore interface {
	// StageDuration returns the typical days a case spends in a stage at
	// the given percentile.
	StageDuration(stage Stage, pct Percentile) float64
	// AdjournmentProb returns the probability that a hearing in the given
	// stage for the given case type is adjourned.
	AdjournmentProb(stage Stage, caseType string) float64
	// StageTransitions returns the cumulative transition table out of a stage.
	StageTransitions(stage Stage) []StageTransition
	// CaseTypeStats returns historical medians for a case type.
	// Returns an error for unknown types; callers fall back to documented
	// default constants.
	CaseTypeStats(caseType string) (CaseTypeStats, error)
	// TransitionProb returns the (non-cumulative) probability of a single
	// from->to transition.
	TransitionProb(from, to Stage) float64
}

// stageDurations holds fitted median and p90 stage durations in days.
type stageDurations struct {
	median float64
	p90    float64
}

// StaticParameterStore is a table-backed ParameterStore seeded with
// empirically shaped defaults. It is the implementation the CLI wires in
// when no fitted parameter file is supplied.
type StaticParameterStore struct {
	durations       map[Stage]stageDurations
	adjournBase     map[Stage]float64
	adjournTypeMod  map[string]float64
	transitions     map[Stage][]StageTransition
	caseTypeStats   map[string]CaseTypeStats
	defaultDuration stageDurations
}

// NewStaticParameterStore builds the default table-backed store.
func NewStaticParameterStore() *StaticParameterStore {
	return &StaticParameterStore{
		durations: map[Stage]stageDurations{
			StageAdmission:        {median: 45, p90: 120},
			StageService:          {median: 60, p90: 180},
			StageWrittenStatement: {median: 90, p90: 210},
			StageIssues:           {median: 30, p90: 90},
			StageEvidence:         {median: 180, p90: 420},
			StageArguments:        {median: 60, p90: 150},
			StageJudgment:         {median: 30, p90: 90},
		},
		adjournBase: map[Stage]float64{
			StageAdmission:        0.35,
			StageService:          0.55,
			StageWrittenStatement: 0.50,
			StageIssues:           0.40,
			StageEvidence:         0.60,
			StageArguments:        0.45,
			StageJudgment:         0.25,
		},
		adjournTypeMod: map[string]float64{
			"RSA": 1.10,
			"CCC": 0.95,
			"OS":  1.00,
			"MC":  0.90,
		},
		transitions: map[Stage][]StageTransition{
			StageAdmission: {
				{Next: StageService, CumProb: 0.70},
				{Next: StageWrittenStatement, CumProb: 0.85},
				{Next: StageDismissed, CumProb: 1.00},
			},
			StageService: {
				{Next: StageWrittenStatement, CumProb: 0.80},
				{Next: StageService, CumProb: 0.95},
				{Next: StageDismissed, CumProb: 1.00},
			},
			StageWrittenStatement: {
				{Next: StageIssues, CumProb: 0.75},
				{Next: StageWrittenStatement, CumProb: 0.90},
				{Next: StageEvidence, CumProb: 1.00},
			},
			StageIssues: {
				{Next: StageEvidence, CumProb: 0.90},
				{Next: StageArguments, CumProb: 1.00},
			},
			StageEvidence: {
				{Next: StageEvidence, CumProb: 0.40},
				{Next: StageArguments, CumProb: 0.95},
				{Next: StageDisposed, CumProb: 1.00},
			},
			StageArguments: {
				{Next: StageJudgment, CumProb: 0.80},
				{Next: StageArguments, CumProb: 0.95},
				{Next: StageDisposed, CumProb: 1.00},
			},
			StageJudgment: {
				{Next: StageDisposed, CumProb: 1.00},
			},
		},
		caseTypeStats: map[string]CaseTypeStats{
			"RSA": {DisposalMedianDays: 1095, HearingMedian: 18},
			"CCC": {DisposalMedianDays: 730, HearingMedian: 12},
			"OS":  {DisposalMedianDays: 1460, HearingMedian: 24},
			"MC":  {DisposalMedianDays: 365, HearingMedian: 8},
		},
		defaultDuration: stageDurations{median: 60, p90: 150},
	}
}

// StageDuration returns the fitted duration in days for a stage at the
// requested percentile. Unknown stages fall back to a default duration.
func (s *StaticParameterStore) StageDuration(stage Stage, pct Percentile) float64 {
	d, ok := s.durations[stage]
	if !ok {
		d = s.defaultDuration
	}
	if pct == PercentileP90 {
		return d.p90
	}
	return d.median
}

// AdjournmentProb returns the adjournment probability for a (stage, case
// type) pair, clamped to [0, 0.95].
func (s *StaticParameterStore) AdjournmentProb(stage Stage, caseType string) float64 {
	base, ok := s.adjournBase[stage]
	if !ok {
		base = 0.45
	}
	mod, ok := s.adjournTypeMod[caseType]
	if !ok {
		mod = 1.0
	}
	p := base * mod
	if p > 0.95 {
		p = 0.95
	}
	if p < 0 {
		p = 0
	}
	return p
}

// StageTransitions returns the cumulative transition table for a stage.
// Terminal and unknown stages return nil (no transitions out).
func (s *StaticParameterStore) StageTransitions(stage Stage) []StageTransition {
	return s.transitions[stage]
}

// CaseTypeStats returns historical medians for a case type, or an error for
// unknown types.
func (s *StaticParameterStore) CaseTypeStats(caseType string) (CaseTypeStats, error) {
	stats, ok := s.caseTypeStats[caseType]
	if !ok {
		return CaseTypeStats{}, fmt.Errorf("unknown case type %q", caseType)
	}
	return stats, nil
}

// TransitionProb returns the probability of a single from->to transition,
// recovered from the cumulative table.
func (s *StaticParameterStore) TransitionProb(from, to Stage) float64 {
	prev := 0.0
	for _, t := range s.transitions[from] {
		p := t.CumProb - prev
		prev = t.CumProb
		if t.Next == to {
			return p
		}
	}
	return 0
}
