// Assigns prioritized cases to courtrooms under per-courtroom daily
// capacity, balancing cumulative load across the pool over the life of the
// run.

package sim

import (
	"sort"
	"time"
)

// Assignment is the ephemeral per-day mapping from case id to courtroom id.
// Produced by the Allocator, consumed once by the day's outcome-sampling
// pass, and not persisted beyond the day.
type Assignment struct {
	ByCase map[string]string // case id -> courtroom id
	ByRoom map[string][]*Case // courtroom id -> cases in allocation order
}

// Assigned returns the total number of assigned cases.
func (a *Assignment) Assigned() int {
	return len(a.ByCase)
}

// Allocator distributes cases across courtrooms using a LOAD_BALANCED
// strategy: each case goes to the candidate courtroom with the lowest
// cumulative case count so far, among those with remaining capacity for the
// day, ties broken by courtroom id ascending. Deterministic given the same
// case ordering.
type Allocator struct {
	rooms []*Courtroom

	cumulative map[string]int    // courtroom id -> cases assigned over the run
	prevRoom   map[string]string // case id -> courtroom id from the prior day

	// Reassignments counts cases whose courtroom differs from their prior
	// day's assignment, as a continuity measure.
	Reassignments int
	// CapacityRejections counts cases left unassigned because no courtroom
	// had remaining capacity. They stay eligible the following day with no
	// carry-over boost.
	CapacityRejections int

	daysAllocated int
}

// NewAllocator creates an Allocator over a fixed courtroom pool.
// Courtrooms are sorted by id once so the tie-break ordering is stable.
func NewAllocator(rooms []*Courtroom) *Allocator {
	sorted := append([]*Courtroom(nil), rooms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	a := &Allocator{
		rooms:      sorted,
		cumulative: make(map[string]int, len(sorted)),
		prevRoom:   make(map[string]string),
	}
	for _, r := range sorted {
		a.cumulative[r.ID] = 0
	}
	return a
}

// Allocate assigns each case to exactly one courtroom for the date.
// Guarantees: no case is assigned twice, no courtroom exceeds its effective
// daily capacity, and the result is deterministic for a given input order.
func (a *Allocator) Allocate(cases []*Case, date time.Time, cal *Calendar) *Assignment {
	a.daysAllocated++
	remaining := make(map[string]int, len(a.rooms))
	for _, r := range a.rooms {
		remaining[r.ID] = r.EffectiveCapacity(date, cal)
	}

	assignment := &Assignment{
		ByCase: make(map[string]string, len(cases)),
		ByRoom: make(map[string][]*Case, len(a.rooms)),
	}
	dayRoom := make(map[string]string, len(cases))

	for _, c := range cases {
		if _, dup := assignment.ByCase[c.ID]; dup {
			continue
		}
		room := a.pickRoom(remaining)
		if room == nil {
			a.CapacityRejections++
			continue
		}
		remaining[room.ID]--
		a.cumulative[room.ID]++
		assignment.ByCase[c.ID] = room.ID
		assignment.ByRoom[room.ID] = append(assignment.ByRoom[room.ID], c)
		if prev, ok := a.prevRoom[c.ID]; ok && prev != room.ID {
			a.Reassignments++
		}
		dayRoom[c.ID] = room.ID
	}

	// Only cases assigned today carry a prior-room record into tomorrow.
	a.prevRoom = dayRoom
	return assignment
}

// pickRoom returns the courtroom with remaining capacity and the lowest
// cumulative load, ties broken by id ascending (rooms are pre-sorted).
func (a *Allocator) pickRoom(remaining map[string]int) *Courtroom {
	var best *Courtroom
	for _, r := range a.rooms {
		if remaining[r.ID] <= 0 {
			continue
		}
		if best == nil || a.cumulative[r.ID] < a.cumulative[best.ID] {
			best = r
		}
	}
	return best
}

// Totals returns a copy of the per-courtroom cumulative assignment counts.
func (a *Allocator) Totals() map[string]int {
	out := make(map[string]int, len(a.cumulative))
	for k, v := range a.cumulative {
		out[k] = v
	}
	return out
}

// AveragePerDay returns the mean cases assigned per courtroom per
// allocation day.
func (a *Allocator) AveragePerDay() float64 {
	if a.daysAllocated == 0 || len(a.rooms) == 0 {
		return 0
	}
	total := 0
	for _, v := range a.cumulative {
		total += v
	}
	return float64(total) / float64(len(a.rooms)) / float64(a.daysAllocated)
}

// Gini returns the Gini coefficient over per-courtroom cumulative loads:
// 0 for a perfectly even distribution, approaching 1 for maximal inequality.
func (a *Allocator) Gini() float64 {
	n := len(a.rooms)
	if n == 0 {
		return 0
	}
	loads := make([]float64, 0, n)
	sum := 0.0
	for _, r := range a.rooms {
		v := float64(a.cumulative[r.ID])
		loads = append(loads, v)
		sum += v
	}
	if sum == 0 {
		return 0
	}
	sort.Float64s(loads)
	// Standard sorted-array formulation.
	weighted := 0.0
	for i, v := range loads {
		weighted += float64(2*(i+1)-n-1) * v
	}
	return weighted / (float64(n) * sum)
}
