package service

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mempocket/mempocket/internal/model"
)

// PendingProposals returns all proposals awaiting review, newest first.
func (s *Service) PendingProposals(ctx context.Context) ([]model.Proposal, error) {
	return s.store.ListProposals(ctx, true)
}

// GetProposal returns one proposal by id.
func (s *Service) GetProposal(ctx context.Context, id string) (*model.Proposal, error) {
	return s.store.GetProposal(ctx, id)
}

// GetRun returns one pipeline run report by id.
func (s *Service) GetRun(ctx context.Context, id string) (*model.RunReport, error) {
	return s.store.GetRun(ctx, id)
}

// Approve turns a pending proposal into a real entry, flips the proposal to
// approved, and rebuilds the index. Fails with ErrInvalidState once the
// proposal has been decided either way; decisions are never reversed.
func (s *Service) Approve(ctx context.Context, proposalID string) (*model.Entry, error) {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != model.ProposalPending {
		return nil, eris.Wrap(ErrInvalidState,
			fmt.Sprintf("proposals: %s already %s", proposalID, proposal.Status))
	}

	entry := model.NewEntry(
		proposal.Suggested.Title,
		proposal.Suggested.Entity,
		proposal.Suggested.Context,
		proposal.Suggested.Content,
		proposal.Suggested.Links,
		s.proposalSource(ctx, proposal),
		actorPipeline,
		fmt.Sprintf("approved from proposal %s", proposalID),
	)
	if err := s.store.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}

	proposal.Status = model.ProposalApproved
	if err := s.store.SaveProposal(ctx, proposal); err != nil {
		return nil, err
	}
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}

	zap.L().Info("proposal approved",
		zap.String("proposal_id", proposalID),
		zap.String("entry_id", entry.ID),
	)
	return entry, nil
}

// Reject flips a pending proposal to rejected, optionally recording the
// reviewer's reason. Creates nothing and leaves the index untouched.
func (s *Service) Reject(ctx context.Context, proposalID, reason string) error {
	proposal, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != model.ProposalPending {
		return eris.Wrap(ErrInvalidState,
			fmt.Sprintf("proposals: %s already %s", proposalID, proposal.Status))
	}

	proposal.Status = model.ProposalRejected
	proposal.RejectionReason = reason
	if err := s.store.SaveProposal(ctx, proposal); err != nil {
		return err
	}

	zap.L().Info("proposal rejected",
		zap.String("proposal_id", proposalID),
		zap.String("reason", reason),
	)
	return nil
}

// proposalSource derives the new entry's source descriptor from the
// proposal's originating input. A vanished input degrades to a plain text
// reference to the input id.
func (s *Service) proposalSource(ctx context.Context, proposal *model.Proposal) model.Source {
	source := model.Source{Type: model.InputTypeText, Ref: proposal.Evidence.SourceInput}

	inp, err := s.store.GetInput(ctx, proposal.Evidence.SourceInput)
	if err != nil {
		return source
	}
	source.Type = inp.Type
	if inp.Type == model.InputTypeFile && inp.FilePath != "" {
		source.Ref = inp.FilePath
		if data, err := afero.ReadFile(s.fs, inp.FilePath); err == nil {
			source.Hash = fmt.Sprintf("%x", sha256.Sum256(data))
		}
	}
	return source
}
