package sim

// Stage is a discrete procedural phase a case occupies. The set is ordered
// by typical progression but transitions are sampled from empirical tables,
// so the sequence is not strictly linear (cases can loop or skip).
type Stage string

const (
	StageAdmission        Stage = "admission"
	StageService          Stage = "service"
	StageWrittenStatement Stage = "written_statement"
	StageIssues           Stage = "issues"
	StageEvidence         Stage = "evidence"
	StageArguments        Stage = "arguments"
	StageJudgment         Stage = "judgment"
	StageDisposed         Stage = "disposed"
	StageDismissed        Stage = "dismissed"
)

// AllStages lists every recognized stage in typical progression order.
var AllStages = []Stage{
	StageAdmission,
	StageService,
	StageWrittenStatement,
	StageIssues,
	StageEvidence,
	StageArguments,
	StageJudgment,
	StageDisposed,
	StageDismissed,
}

// TerminalStages is the single authoritative terminal-stage enumeration.
// Both the stage-transition check and the disposal invariant use this set.
// A case may also be disposed by the natural-disposal heuristic while in a
// non-terminal stage; disposal is then recorded on status and disposal date
// independently of stage.
var TerminalStages = map[Stage]bool{
	StageDisposed:  true,
	StageDismissed: true,
}

// DisposalCapableStages is the set of stages in which the natural-disposal
// heuristic is applied after a heard hearing. Deliberately wider than
// TerminalStages: mature cases settle or are withdrawn before judgment.
var DisposalCapableStages = map[Stage]bool{
	StageEvidence:  true,
	StageArguments: true,
	StageJudgment:  true,
}

// Terminal reports whether the stage ends a case's active life.
func (s Stage) Terminal() bool {
	return TerminalStages[s]
}

// validStages maps accepted stage strings.
var validStages = func() map[Stage]bool {
	m := make(map[Stage]bool, len(AllStages))
	for _, s := range AllStages {
		m[s] = true
	}
	return m
}()

// IsValidStage returns true if the given string is a recognized stage.
func IsValidStage(s string) bool {
	return validStages[Stage(s)]
}
