package model

import "time"

// Pipeline stage names, in execution order.
const (
	StageExtract    = "extract"
	StageClassify   = "classify"
	StageLinkDetect = "link_detect"
	StagePropose    = "propose"
)

// Run trigger sources.
const (
	TriggerNewInput = "new_input"
	TriggerManual   = "manual"
)

// PipelineStep is one stage's audit record within a run.
type PipelineStep struct {
	Stage     string    `json:"stage"`
	Result    string    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// RunReport is the append-only audit trail of one pipeline execution.
// EndedAt stays nil until the run terminates; the report is immutable after.
type RunReport struct {
	ID           string         `json:"run_id"`
	StartedAt    time.Time      `json:"started_at"`
	EndedAt      *time.Time     `json:"ended_at,omitempty"`
	Trigger      string         `json:"trigger"` // "new_input" or "manual"
	InputSummary string         `json:"input_summary"`
	InputID      string         `json:"input_id"`
	Steps        []PipelineStep `json:"steps"`
	Proposals    []string       `json:"proposals"` // proposal ids, in creation order
	Flags        []string       `json:"flags"`     // soft-failure notices
}

// NewRunReport starts a run report for the given input.
func NewRunReport(trigger, inputID string) *RunReport {
	return &RunReport{
		ID:        NewID("run_"),
		StartedAt: time.Now().UTC(),
		Trigger:   trigger,
		InputID:   inputID,
	}
}

// AddStep appends one stage record to the report.
func (r *RunReport) AddStep(stage, result string) {
	r.Steps = append(r.Steps, PipelineStep{
		Stage:     stage,
		Result:    result,
		Timestamp: time.Now().UTC(),
	})
}

// Flag records a soft-failure notice.
func (r *RunReport) Flag(msg string) {
	r.Flags = append(r.Flags, msg)
}

// End stamps the terminal timestamp.
func (r *RunReport) End() {
	now := time.Now().UTC()
	r.EndedAt = &now
}
