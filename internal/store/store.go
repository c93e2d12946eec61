package store

import (
	"context"
	"errors"

	"github.com/mempocket/mempocket/internal/model"
)

// ErrNotFound signals a typed absence: the requested record id does not
// exist in its partition. Callers branch on it with errors.Is.
var ErrNotFound = errors.New("record not found")

// EntryFilter narrows entry listings. Zero values mean no filtering.
type EntryFilter struct {
	Entity  model.Entity
	Context model.Context
}

// Matches reports whether the entry passes the filter.
func (f EntryFilter) Matches(e *model.Entry) bool {
	if f.Entity != "" && e.Entity != f.Entity {
		return false
	}
	if f.Context != "" && e.Context != f.Context {
		return false
	}
	return true
}

// Store is the persistence interface for all record kinds. Every write is a
// whole-record replacement keyed by id; there is no partial update.
type Store interface {
	// Entries
	SaveEntry(ctx context.Context, entry *model.Entry) error
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	ListEntries(ctx context.Context, filter EntryFilter) ([]model.Entry, error)
	DeleteEntry(ctx context.Context, id string) error

	// Inputs (inbox)
	SaveInput(ctx context.Context, input *model.Input) error
	GetInput(ctx context.Context, id string) (*model.Input, error)
	ListInputs(ctx context.Context) ([]model.Input, error)

	// Proposals
	SaveProposal(ctx context.Context, proposal *model.Proposal) error
	GetProposal(ctx context.Context, id string) (*model.Proposal, error)
	ListProposals(ctx context.Context, pendingOnly bool) ([]model.Proposal, error)

	// Run reports
	SaveRun(ctx context.Context, run *model.RunReport) error
	GetRun(ctx context.Context, id string) (*model.RunReport, error)
	ListRuns(ctx context.Context) ([]model.RunReport, error)

	// Derived index (cache, not source of truth)
	SaveIndex(ctx context.Context, index *model.Index) error
	GetIndex(ctx context.Context) (*model.Index, error)

	// Init creates the partition layout if missing.
	Init(ctx context.Context) error
}
