// Natural-disposal heuristic: a probabilistic check applied when a case is
// heard while in a disposal-capable stage. The likelihood is the product of
// an age factor, a hearing factor, and a stage factor, capped overall.

package sim

import "time"

// Calibration constants for the natural-disposal heuristic. Named so they
// can be tuned without touching the algorithm.
const (
	// Maturity ratio breakpoints: case age / historical median disposal
	// duration for its type.
	maturityLowBreak  = 0.2
	maturityMidBreak  = 0.8
	maturityHighBreak = 1.5

	// Age-factor values at the breakpoints. Below maturityLowBreak the
	// factor is flat; between breakpoints it ramps linearly; at and above
	// maturityHighBreak it is capped flat.
	ageFactorFloor   = 0.02
	ageFactorMid     = 0.15
	ageFactorCeiling = 0.45

	// hearingFactorCap bounds the hearing-count ratio contribution.
	hearingFactorCap = 1.5

	// disposalProbCap bounds the final combined probability, avoiding
	// unrealistic mass-disposal events.
	disposalProbCap = 0.30

	// Fallback medians for case types unknown to the parameter store.
	defaultDisposalMedianDays = 730.0
	defaultHearingMedian      = 12.0
)

// stageDisposalFactor is the stage-specific multiplier: lower in stages
// where early disposal is possible but uncommon, higher in stages that are
// nearly always terminal.
var stageDisposalFactor = map[Stage]float64{
	StageEvidence:  0.5,
	StageArguments: 0.8,
	StageJudgment:  1.2,
}

// ageFactor maps the maturity ratio onto a base probability via a piecewise
// linear ramp.
func ageFactor(maturity float64) float64 {
	switch {
	case maturity < maturityLowBreak:
		return ageFactorFloor
	case maturity < maturityMidBreak:
		frac := (maturity - maturityLowBreak) / (maturityMidBreak - maturityLowBreak)
		return ageFactorFloor + frac*(ageFactorMid-ageFactorFloor)
	case maturity < maturityHighBreak:
		frac := (maturity - maturityMidBreak) / (maturityHighBreak - maturityMidBreak)
		return ageFactorMid + frac*(ageFactorCeiling-ageFactorMid)
	default:
		return ageFactorCeiling
	}
}

// DisposalProbability returns the natural-disposal probability for a case
// heard on the given date. Zero for stages outside DisposalCapableStages.
// Unknown case types recover locally with the documented fallback medians;
// the error from the store is never propagated.
func DisposalProbability(c *Case, now time.Time, params ParameterStore) float64 {
	if !DisposalCapableStages[c.Stage] {
		return 0
	}

	dispMedian := defaultDisposalMedianDays
	hearMedian := defaultHearingMedian
	if stats, err := params.CaseTypeStats(c.Type); err == nil {
		if stats.DisposalMedianDays > 0 {
			dispMedian = stats.DisposalMedianDays
		}
		if stats.HearingMedian > 0 {
			hearMedian = stats.HearingMedian
		}
	}

	maturity := float64(c.RecomputeAge(now)) / dispMedian
	age := ageFactor(maturity)

	hearing := float64(c.HearingCount) / hearMedian
	if hearing > hearingFactorCap {
		hearing = hearingFactorCap
	}

	p := age * hearing * stageDisposalFactor[c.Stage]
	if p > disposalProbCap {
		p = disposalProbCap
	}
	return p
}
