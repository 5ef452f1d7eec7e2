package domain

import "time"

// StepName identifies a pipeline stage.
type StepName string

const (
	StepPrereq   StepName = "prereq"
	StepCollect  StepName = "collect"
	StepGenerate StepName = "generate"
	StepPublish  StepName = "publish"
	StepReport   StepName = "report"
	StepCleanup  StepName = "cleanup"
)

// StepStatus is the explicit outcome of a stage. Degraded stages finish
// as StatusWarned; only fatal stages produce StatusFailed.
type StepStatus string

const (
	StatusOK      StepStatus = "ok"
	StatusWarned  StepStatus = "warned"
	StatusFailed  StepStatus = "failed"
	StatusSkipped StepStatus = "skipped"
)

// StepResult records one stage of a run.
type StepResult struct {
	Step     StepName
	Status   StepStatus
	Attempts int    // process invocations made, 0 for non-process stages
	Detail   string // human-readable summary ("copied 12 pages", "nothing to commit")
	Err      *StepError
}

// StepError is a serializable error snapshot for run artifacts.
type StepError struct {
	Message string
}

// NewStepError converts an error for embedding into a StepResult.
func NewStepError(err error) *StepError {
	if err == nil {
		return nil
	}
	return &StepError{Message: err.Error()}
}

// GitOutcome reports how far a git publish got. Commit and push failures
// degrade the outcome (Warnings) without failing it; only staging is fatal.
type GitOutcome struct {
	Committed bool
	Pushed    bool
	Warnings  []string
}

// PublishStats summarizes a publish-directory sync.
type PublishStats struct {
	MainCopied  bool // dashboard copied as index.html + stable alias
	EntityPages int  // per-ticker article pages copied
}

// RunReport represents one full pipeline run for reproducibility.
type RunReport struct {
	StartedAt  time.Time
	FinishedAt time.Time

	Strategy PublishStrategy
	Steps    []StepResult
	Publish  PublishStats

	Succeeded bool
}

// Duration returns the wall-clock time of the run.
func (r RunReport) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Step returns the result for a stage, if the run reached it.
func (r RunReport) Step(name StepName) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == name {
			return s, true
		}
	}
	return StepResult{}, false
}
