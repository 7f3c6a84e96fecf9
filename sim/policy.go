package sim

import (
	"fmt"
	"sort"
	"time"
)

// SchedulingPolicy orders ripe, schedulable cases by priority.
// Position 0 is scheduled first if capacity allows.
// Implementations MUST NOT modify case state — only the returned order matters.
type SchedulingPolicy interface {
	// Name returns the policy's display name (also its registry key).
	Name() string
	// NeedsReadinessScore reports whether the engine must precompute
	// per-case readiness scores before Prioritize is called.
	NeedsReadinessScore() bool
	// Prioritize returns the cases in descending priority order.
	Prioritize(cases []*Case, now time.Time) []*Case
}

// FIFOPolicy orders by filed date ascending (oldest filed first).
// Ties keep input order: stable sort required for determinism.
type FIFOPolicy struct{}

func (f *FIFOPolicy) Name() string              { return "fifo" }
func (f *FIFOPolicy) NeedsReadinessScore() bool { return false }

func (f *FIFOPolicy) Prioritize(cases []*Case, _ time.Time) []*Case {
	ordered := append([]*Case(nil), cases...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FiledDate.Before(ordered[j].FiledDate)
	})
	return ordered
}

// AgePolicy orders by current age descending (oldest case first).
// Equivalent to FIFO when ages strictly increase with filing order, but age
// is recomputed explicitly on every call rather than cached across days.
type AgePolicy struct{}

func (a *AgePolicy) Name() string              { return "age" }
func (a *AgePolicy) NeedsReadinessScore() bool { return false }

func (a *AgePolicy) Prioritize(cases []*Case, now time.Time) []*Case {
	ordered := append([]*Case(nil), cases...)
	for _, c := range ordered {
		c.RecomputeAge(now)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AgeDays > ordered[j].AgeDays
	})
	return ordered
}

// ReadinessPolicy orders by the precomputed composite readiness score
// descending. The engine computes the score for every candidate before this
// policy runs (see Case.ComputeReadinessScore).
type ReadinessPolicy struct{}

func (r *ReadinessPolicy) Name() string              { return "readiness" }
func (r *ReadinessPolicy) NeedsReadinessScore() bool { return true }

func (r *ReadinessPolicy) Prioritize(cases []*Case, _ time.Time) []*Case {
	ordered := append([]*Case(nil), cases...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ReadinessScore > ordered[j].ReadinessScore
	})
	return ordered
}

// validPolicies is the set of recognized scheduling policy names.
// Shared by config validation and NewSchedulingPolicy to avoid duplication.
var validPolicies = map[string]bool{
	"fifo":      true,
	"age":       true,
	"readiness": true,
}

// IsValidPolicy returns true if the given name is a recognized scheduling
// policy. Configuration validation rejects unknown names before a simulator
// is constructed; there is no silent default.
func IsValidPolicy(name string) bool {
	return validPolicies[name]
}

// NewSchedulingPolicy creates a SchedulingPolicy by name.
// Panics on unrecognized names: callers validate via IsValidPolicy first.
func NewSchedulingPolicy(name string) SchedulingPolicy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown scheduling policy %q", name))
	}
	switch name {
	case "fifo":
		return &FIFOPolicy{}
	case "age":
		return &AgePolicy{}
	case "readiness":
		return &ReadinessPolicy{}
	default:
		panic(fmt.Sprintf("unhandled scheduling policy %q", name))
	}
}
