// Package workload generates deterministic synthetic case pools for
// simulation runs, from a declarative YAML spec.
package workload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/court-sim/court-sim/sim"
)

// TypeMix weights one case type in the generated pool.
type TypeMix struct {
	Type   string  `yaml:"type"`
	Weight float64 `yaml:"weight"`
}

// StageMix weights one starting stage in the generated pool.
type StageMix struct {
	Stage  string  `yaml:"stage"`
	Weight float64 `yaml:"weight"`
}

// PoolSpec describes a synthetic case pool. Deterministic: the same spec
// and seed always generate the same pool.
type PoolSpec struct {
	Cases        int     `yaml:"cases"`
	Seed         int64   `yaml:"seed"`
	BacklogYears float64 `yaml:"backlog_years"` // filing-date spread behind the start date

	UrgentRate         float64 `yaml:"urgent_rate"`
	ServicePendingRate float64 `yaml:"service_pending_rate"`
	StayRate           float64 `yaml:"stay_rate"`
	AdjournedRate      float64 `yaml:"adjourned_rate"` // fraction of heard-before cases last adjourned

	CaseTypes []TypeMix  `yaml:"case_types"`
	StageMix  []StageMix `yaml:"stage_mix"`
}

// DefaultPoolSpec returns a pool spec with an empirically shaped mix.
func DefaultPoolSpec(cases int, seed int64) *PoolSpec {
	return &PoolSpec{
		Cases:              cases,
		Seed:               seed,
		BacklogYears:       5,
		UrgentRate:         0.08,
		ServicePendingRate: 0.15,
		StayRate:           0.05,
		AdjournedRate:      0.35,
		CaseTypes: []TypeMix{
			{Type: "RSA", Weight: 0.30},
			{Type: "CCC", Weight: 0.25},
			{Type: "OS", Weight: 0.30},
			{Type: "MC", Weight: 0.15},
		},
		StageMix: []StageMix{
			{Stage: string(sim.StageAdmission), Weight: 0.15},
			{Stage: string(sim.StageService), Weight: 0.15},
			{Stage: string(sim.StageWrittenStatement), Weight: 0.20},
			{Stage: string(sim.StageIssues), Weight: 0.10},
			{Stage: string(sim.StageEvidence), Weight: 0.25},
			{Stage: string(sim.StageArguments), Weight: 0.10},
			{Stage: string(sim.StageJudgment), Weight: 0.05},
		},
	}
}

// LoadPoolSpec reads and parses a YAML pool spec file.
func LoadPoolSpec(path string) (*PoolSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pool spec: %w", err)
	}
	var spec PoolSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing pool spec: %w", err)
	}
	return &spec, nil
}

// Validate checks the spec before generation.
func (s *PoolSpec) Validate() error {
	if s.Cases < 0 {
		return fmt.Errorf("cases must be >= 0, got %d", s.Cases)
	}
	if s.BacklogYears <= 0 {
		return fmt.Errorf("backlog_years must be positive, got %g", s.BacklogYears)
	}
	for _, rate := range []struct {
		name string
		v    float64
	}{
		{"urgent_rate", s.UrgentRate},
		{"service_pending_rate", s.ServicePendingRate},
		{"stay_rate", s.StayRate},
		{"adjourned_rate", s.AdjournedRate},
	} {
		if rate.v < 0 || rate.v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %g", rate.name, rate.v)
		}
	}
	if len(s.CaseTypes) == 0 {
		return fmt.Errorf("case_types must not be empty")
	}
	for _, m := range s.CaseTypes {
		if m.Type == "" {
			return fmt.Errorf("case type must not be empty")
		}
		if m.Weight < 0 {
			return fmt.Errorf("case type %q has negative weight", m.Type)
		}
	}
	if len(s.StageMix) == 0 {
		return fmt.Errorf("stage_mix must not be empty")
	}
	for _, m := range s.StageMix {
		if !sim.IsValidStage(m.Stage) {
			return fmt.Errorf("unknown stage %q in stage_mix", m.Stage)
		}
		if sim.Stage(m.Stage).Terminal() {
			return fmt.Errorf("terminal stage %q not allowed in stage_mix", m.Stage)
		}
		if m.Weight < 0 {
			return fmt.Errorf("stage %q has negative weight", m.Stage)
		}
	}
	return nil
}
