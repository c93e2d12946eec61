package model

import "time"

// SuggestedEntry carries the unconfirmed entry fields inside a proposal.
// Structurally the core of an Entry, but nothing is persisted as an entry
// until a human approves.
type SuggestedEntry struct {
	Title   string   `json:"title"`
	Entity  Entity   `json:"entity"`
	Context Context  `json:"context"`
	Content string   `json:"content"`
	Links   []string `json:"links"`
}

// Evidence ties a proposal back to the input it was derived from.
type Evidence struct {
	SourceInput   string `json:"source_input"`
	ExtractedFrom string `json:"extracted_from"`
	Span          string `json:"span,omitempty"` // e.g. "line 3-5"
}

// Proposal is a pipeline-suggested entry awaiting human review.
type Proposal struct {
	ID         string         `json:"proposal_id"`
	RunID      string         `json:"run_id"`
	Type       ProposalType   `json:"type"`
	Suggested  SuggestedEntry `json:"suggested"`
	Evidence   Evidence       `json:"evidence"`
	Confidence float64        `json:"confidence"` // always in [0,1]
	Reason     string         `json:"reason"`
	Status     ProposalStatus `json:"status"`
	// RejectionReason is set only when a reviewer rejects with a reason.
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewProposal builds a pending proposal owned by the given run.
func NewProposal(runID string, suggested SuggestedEntry, evidence Evidence, confidence float64, reason string) *Proposal {
	return &Proposal{
		ID:         NewID("prop_"),
		RunID:      runID,
		Type:       ProposalNewEntry,
		Suggested:  suggested,
		Evidence:   evidence,
		Confidence: clamp01(confidence),
		Reason:     reason,
		Status:     ProposalPending,
		CreatedAt:  time.Now().UTC(),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
