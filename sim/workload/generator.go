package workload

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/court-sim/court-sim/sim"
)

// stageHearingBase approximates how many hearings a case has typically had
// by the time it reaches a stage.
var stageHearingBase = map[sim.Stage]int{
	sim.StageAdmission:        0,
	sim.StageService:          1,
	sim.StageWrittenStatement: 3,
	sim.StageIssues:           5,
	sim.StageEvidence:         8,
	sim.StageArguments:        14,
	sim.StageJudgment:         18,
}

// GeneratePool creates a synthetic case pool as of the given date.
// Deterministic given the same spec and seed. Returns cases sorted by filed
// date with sequential ids.
func GeneratePool(spec *PoolSpec, asOf time.Time) ([]*sim.Case, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pool spec: %w", err)
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	backlogDays := int(spec.BacklogYears * 365)
	if backlogDays < 1 {
		backlogDays = 1
	}

	cases := make([]*sim.Case, 0, spec.Cases)
	for i := 0; i < spec.Cases; i++ {
		caseType := pickType(spec.CaseTypes, rng)
		stage := sim.Stage(pickStage(spec.StageMix, rng))
		filed := asOf.AddDate(0, 0, -(1 + rng.Intn(backlogDays)))

		c := &sim.Case{
			Type:      caseType,
			FiledDate: filed,
			Stage:     stage,
			Status:    sim.StatusPending,
			Urgent:    rng.Float64() < spec.UrgentRate,
			Stayed:    rng.Float64() < spec.StayRate,
		}

		// Service can only still be pending before written statements.
		if stage == sim.StageAdmission || stage == sim.StageService {
			c.ServicePending = rng.Float64() < spec.ServicePendingRate
		}

		// Hearing history scaled to procedural progress.
		base := stageHearingBase[stage]
		if base > 0 {
			c.HearingCount = base + rng.Intn(base+1)
			gap := 1 + rng.Intn(90)
			last := asOf.AddDate(0, 0, -gap)
			if last.Before(filed) {
				last = filed
			}
			c.LastHearingDate = last
			if rng.Float64() < spec.AdjournedRate {
				c.Status = sim.StatusAdjourned
			}
		}

		c.Ripeness = sim.Classify(c, asOf)
		c.RipenessReason = sim.RipenessReason(c.Ripeness)
		c.RipenessChangedAt = asOf

		cases = append(cases, c)
	}

	// Sort by filed date (stable: generation order breaks ties), then
	// assign sequential ids.
	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].FiledDate.Before(cases[j].FiledDate)
	})
	for i, c := range cases {
		c.ID = fmt.Sprintf("%s-%d-%04d", c.Type, c.FiledDate.Year(), i+1)
	}
	return cases, nil
}

// FilingFunc returns a sim.FilingFunc that creates fresh admission-stage
// filings with the spec's type mix and urgency rate. Draws come from the
// engine's shared RNG stream so runs stay reproducible.
func (s *PoolSpec) FilingFunc() sim.FilingFunc {
	return func(date time.Time, seq int, rng *rand.Rand) *sim.Case {
		caseType := pickType(s.CaseTypes, rng)
		c := &sim.Case{
			ID:        fmt.Sprintf("%s-%d-F%04d", caseType, date.Year(), seq+1),
			Type:      caseType,
			FiledDate: date,
			Stage:     sim.StageAdmission,
			Status:    sim.StatusPending,
			Urgent:    rng.Float64() < s.UrgentRate,
		}
		c.ServicePending = rng.Float64() < s.ServicePendingRate
		c.Ripeness = sim.Classify(c, date)
		c.RipenessReason = sim.RipenessReason(c.Ripeness)
		c.RipenessChangedAt = date
		return c
	}
}

func pickType(mix []TypeMix, rng *rand.Rand) string {
	total := 0.0
	for _, m := range mix {
		total += m.Weight
	}
	if total <= 0 {
		return mix[0].Type
	}
	draw := rng.Float64() * total
	cum := 0.0
	for _, m := range mix {
		cum += m.Weight
		if draw < cum {
			return m.Type
		}
	}
	return mix[len(mix)-1].Type
}

func pickStage(mix []StageMix, rng *rand.Rand) string {
	total := 0.0
	for _, m := range mix {
		total += m.Weight
	}
	if total <= 0 {
		return mix[0].Stage
	}
	draw := rng.Float64() * total
	cum := 0.0
	for _, m := range mix {
		cum += m.Weight
		if draw < cum {
			return m.Stage
		}
	}
	return mix[len(mix)-1].Stage
}
