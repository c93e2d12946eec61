// Package service implements the command surface over the record store:
// entry operations, proposal review, capture, search, and status. Every
// entry mutation ends with a full index rebuild.
package service

import (
	"context"
	"errors"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mempocket/mempocket/internal/links"
	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/pipeline"
	"github.com/mempocket/mempocket/internal/store"
)

// ErrInvalidState rejects an operation on a record outside the required
// lifecycle state, e.g. approving an already-decided proposal.
var ErrInvalidState = errors.New("invalid state")

// actorUser attributes manual mutations in entry history.
const actorUser = "user"

// actorPipeline attributes entries created by approving pipeline proposals.
const actorPipeline = "agent:pipeline"

// Service wires the store, the pipeline runner, and the filesystem used for
// file capture into one command surface.
type Service struct {
	store  store.Store
	runner *pipeline.Runner
	fs     afero.Fs
	home   string
}

// New builds a service. home is reported by Status only.
func New(st store.Store, runner *pipeline.Runner, fsys afero.Fs, home string) *Service {
	return &Service{store: st, runner: runner, fs: fsys, home: home}
}

// Reindex rebuilds the link/backlink/tag index from the full entry set and
// persists it. Always a total rebuild: backlink correctness needs the whole
// graph, and a personal corpus makes the O(n) scan cheap.
func (s *Service) Reindex(ctx context.Context) (*model.Index, error) {
	entries, err := s.store.ListEntries(ctx, store.EntryFilter{})
	if err != nil {
		return nil, err
	}
	index := links.Rebuild(entries)
	if err := s.store.SaveIndex(ctx, index); err != nil {
		return nil, err
	}
	zap.L().Debug("index rebuilt",
		zap.Int("entries", len(entries)),
		zap.Int("linked", len(index.Links)),
	)
	return index, nil
}
