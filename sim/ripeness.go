package sim

import "time"

// RipenessStatus classifies whether a case has cleared its procedural
// prerequisites and is substantively ready for a hearing on the merits.
type RipenessStatus string

const (
	// Ripe cases are ready for a merits hearing.
	Ripe RipenessStatus = "ripe"
	// UnripeServicePending: service of summons is incomplete.
	UnripeServicePending RipenessStatus = "unripe_service_pending"
	// UnripeStay: proceedings are stayed.
	UnripeStay RipenessStatus = "unripe_stay"
	// UnripeProcedural: a procedural prerequisite other than service or a
	// stay is outstanding (e.g. a freshly filed admission-stage matter).
	UnripeProcedural RipenessStatus = "unripe_procedural"
	// Conditional is the conservative fallback for cases whose readiness
	// cannot be determined from stage and history. Conditional cases ARE
	// schedulable; this default keeps throughput realistic and must be
	// preserved exactly.
	Conditional RipenessStatus = "conditional"
)

// admissionGraceDays is the minimum age before a never-heard admission-stage
// case is considered procedurally ready.
const admissionGraceDays = 7

// Classify maps a case and the current date to a ripeness status.
// Pure and deterministic; the caller persists any status change and emits
// ripeness_change events when the canonical string value differs from the
// case's previously recorded status.
func Classify(c *Case, now time.Time) RipenessStatus {
	if c.Stayed {
		return UnripeStay
	}
	if c.ServicePending || c.Stage == StageService {
		return UnripeServicePending
	}

	switch c.Stage {
	case StageAdmission:
		if c.HearingCount == 0 && int(now.Sub(c.FiledDate).Hours()/24) < admissionGraceDays {
			return UnripeProcedural
		}
		// Admission matters past the grace window have unknown merits
		// readiness; fall back conservatively to schedulable.
		return Conditional
	case StageWrittenStatement, StageIssues, StageEvidence, StageArguments, StageJudgment:
		return Ripe
	}

	// Unknown or missing stage data defaults to the schedulable fallback.
	return Conditional
}

// Schedulable reports whether a status admits the case to the day's
// candidate pool. Conditional counts as schedulable (see Conditional).
func Schedulable(s RipenessStatus) bool {
	return s == Ripe || s == Conditional
}

// ripenessReasons maps non-ripe statuses to the human-readable reason text
// used in event details.
var ripenessReasons = map[RipenessStatus]string{
	UnripeServicePending: "service of summons pending",
	UnripeStay:           "proceedings stayed",
	UnripeProcedural:     "procedural prerequisites outstanding",
	Conditional:          "readiness undetermined, conditionally schedulable",
}

// RipenessReason returns the human-readable reason for a non-ripe status,
// or the empty string for Ripe.
func RipenessReason(s RipenessStatus) string {
	return ripenessReasons[s]
}
