// Tracks simulation-wide and per-day aggregates for final reporting.

package sim

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/court-sim/court-sim/sim/eventlog"
)

// Metrics aggregates statistics about the simulation for final reporting.
// Useful for comparing scheduling policies on throughput, fairness, and
// utilization.
type Metrics struct {
	HearingsTotal     int // hearings scheduled and sampled (heard + adjourned)
	HearingsHeard     int
	HearingsAdjourned int
	Disposals         int

	RipenessTransitions int // ripeness_change events emitted
	UnripeFiltered      int // candidate passes filtered out as unripe
	CapacityRejected    int // eligible cases beyond the day's total capacity

	CapacityOffered int // sum of effective daily capacities over the run

	Daily []eventlog.MetricsRow

	// DisposalAgeDays holds the age at disposal for every disposed case,
	// for end-of-run distribution reporting.
	DisposalAgeDays []float64
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Utilization returns the fraction of offered capacity that resulted in
// heard hearings over the whole run.
func (m *Metrics) Utilization() float64 {
	if m.CapacityOffered == 0 {
		return 0
	}
	return float64(m.HearingsHeard) / float64(m.CapacityOffered)
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(endDate time.Time, giniLoad float64) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("End Date             : %s\n", endDate.Format("2006-01-02"))
	fmt.Printf("Hearings Total       : %d\n", m.HearingsTotal)
	fmt.Printf("Hearings Heard       : %d\n", m.HearingsHeard)
	fmt.Printf("Hearings Adjourned   : %d\n", m.HearingsAdjourned)
	fmt.Printf("Disposals            : %d\n", m.Disposals)
	fmt.Printf("Ripeness Transitions : %d\n", m.RipenessTransitions)
	fmt.Printf("Unripe Filtered      : %d\n", m.UnripeFiltered)
	fmt.Printf("Capacity Rejected    : %d\n", m.CapacityRejected)
	fmt.Printf("Utilization          : %.4f\n", m.Utilization())
	fmt.Printf("Courtroom Load Gini  : %.4f\n", giniLoad)

	if len(m.DisposalAgeDays) > 0 {
		ages := append([]float64(nil), m.DisposalAgeDays...)
		sort.Float64s(ages)
		fmt.Printf("Disposal Age Mean    : %.1f days\n", stat.Mean(ages, nil))
		fmt.Printf("Disposal Age Median  : %.1f days\n", stat.Quantile(0.5, stat.Empirical, ages, nil))
		fmt.Printf("Disposal Age P90     : %.1f days\n", stat.Quantile(0.9, stat.Empirical, ages, nil))
	}
}

// SimulationResult is the aggregate returned to the caller at run end.
type SimulationResult struct {
	RunID  string
	Policy string

	HearingsTotal     int
	HearingsHeard     int
	HearingsAdjourned int
	Disposals         int
	Utilization       float64
	EndDate           time.Time

	RipenessTransitions int
	UnripeFiltered      int
	CapacityRejected    int
}
