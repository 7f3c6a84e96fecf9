package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyDate() time.Time {
	return time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
}

func TestFIFOPolicy_OrdersByFiledDate(t *testing.T) {
	now := policyDate()
	a := &Case{ID: "a", FiledDate: now.AddDate(0, 0, -10)}
	b := &Case{ID: "b", FiledDate: now.AddDate(0, 0, -30)}
	c := &Case{ID: "c", FiledDate: now.AddDate(0, 0, -20)}

	p := &FIFOPolicy{}
	ordered := p.Prioritize([]*Case{a, b, c}, now)

	require.Len(t, ordered, 3)
	assert.Equal(t, []string{"b", "c", "a"}, caseIDs(ordered))
	// Input slice untouched.
	assert.Equal(t, "a", a.ID)
}

func TestFIFOPolicy_TiesKeepInputOrder(t *testing.T) {
	now := policyDate()
	filed := now.AddDate(0, 0, -15)
	a := &Case{ID: "a", FiledDate: filed}
	b := &Case{ID: "b", FiledDate: filed}
	c := &Case{ID: "c", FiledDate: filed}

	ordered := (&FIFOPolicy{}).Prioritize([]*Case{b, c, a}, now)
	assert.Equal(t, []string{"b", "c", "a"}, caseIDs(ordered))
}

func TestAgePolicy_OrdersOldestFirst(t *testing.T) {
	now := policyDate()
	young := &Case{ID: "young", FiledDate: now.AddDate(0, 0, -5)}
	old := &Case{ID: "old", FiledDate: now.AddDate(-3, 0, 0)}
	mid := &Case{ID: "mid", FiledDate: now.AddDate(-1, 0, 0)}

	ordered := (&AgePolicy{}).Prioritize([]*Case{young, old, mid}, now)
	assert.Equal(t, []string{"old", "mid", "young"}, caseIDs(ordered))
	// Age is recomputed by the call, not trusted from cache.
	assert.Equal(t, 5, young.AgeDays)
}

func TestReadinessPolicy_OrdersByScore(t *testing.T) {
	now := policyDate()
	low := &Case{ID: "low", ReadinessScore: 0.5}
	high := &Case{ID: "high", ReadinessScore: 9.1}
	mid := &Case{ID: "mid", ReadinessScore: 3.3}

	ordered := (&ReadinessPolicy{}).Prioritize([]*Case{low, high, mid}, now)
	assert.Equal(t, []string{"high", "mid", "low"}, caseIDs(ordered))
}

func TestPolicyMetadata(t *testing.T) {
	tests := []struct {
		name       string
		needsScore bool
	}{
		{"fifo", false},
		{"age", false},
		{"readiness", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSchedulingPolicy(tt.name)
			assert.Equal(t, tt.name, p.Name())
			assert.Equal(t, tt.needsScore, p.NeedsReadinessScore())
		})
	}
}

func TestIsValidPolicy(t *testing.T) {
	assert.True(t, IsValidPolicy("fifo"))
	assert.True(t, IsValidPolicy("age"))
	assert.True(t, IsValidPolicy("readiness"))
	assert.False(t, IsValidPolicy(""))
	assert.False(t, IsValidPolicy("random"))
}

func TestNewSchedulingPolicy_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { NewSchedulingPolicy("lifo") })
}

func caseIDs(cases []*Case) []string {
	ids := make([]string, 0, len(cases))
	for _, c := range cases {
		ids = append(ids, c.ID)
	}
	return ids
}
