package service

import (
	"context"

	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/store"
)

// Status aggregates counts over the whole store.
type Status struct {
	Home              string                `json:"home"`
	TotalEntries      int                   `json:"total_entries"`
	ByEntity          map[model.Entity]int  `json:"by_entity"`
	ByContext         map[model.Context]int `json:"by_context"`
	PendingProposals  int                   `json:"pending_proposals"`
	InboxItems        int                   `json:"inbox_items"`
	UnprocessedInputs int                   `json:"unprocessed_inputs"`
}

// Status computes aggregate counts in one pass over entries, proposals,
// inputs, and runs. An input counts as unprocessed until some run report
// references it.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	status := &Status{
		Home:      s.home,
		ByEntity:  make(map[model.Entity]int),
		ByContext: make(map[model.Context]int),
	}
	for _, e := range model.AllEntities() {
		status.ByEntity[e] = 0
	}
	for _, c := range model.AllContexts() {
		status.ByContext[c] = 0
	}

	entries, err := s.store.ListEntries(ctx, store.EntryFilter{})
	if err != nil {
		return nil, err
	}
	status.TotalEntries = len(entries)
	for _, e := range entries {
		status.ByEntity[e.Entity]++
		status.ByContext[e.Context]++
	}

	proposals, err := s.store.ListProposals(ctx, true)
	if err != nil {
		return nil, err
	}
	status.PendingProposals = len(proposals)

	inputs, err := s.store.ListInputs(ctx)
	if err != nil {
		return nil, err
	}
	status.InboxItems = len(inputs)

	runs, err := s.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	processed := make(map[string]bool, len(runs))
	for _, r := range runs {
		processed[r.InputID] = true
	}
	for _, inp := range inputs {
		if !processed[inp.ID] {
			status.UnprocessedInputs++
		}
	}

	return status, nil
}
