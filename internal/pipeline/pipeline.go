// Package pipeline turns a captured input into a human-reviewable proposal
// through a strictly ordered four-stage run: extract, classify, link_detect,
// propose. Every run produces exactly one audit report; the only abort path
// is a missing input.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mempocket/mempocket/internal/links"
	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/store"
)

const (
	// titleFallbackChars is how much of the content becomes the title when
	// the oracle suggests none.
	titleFallbackChars = 50
	// summaryChars is how much of the input is kept on the run report.
	summaryChars = 200
	// linkPreviewCount caps the references shown in the link_detect step.
	linkPreviewCount = 5
)

// Runner executes classification runs. It holds the record store, the
// classification oracle, and the filesystem used to read file inputs.
type Runner struct {
	store      store.Store
	classifier Classifier
	fs         afero.Fs
}

// NewRunner builds a pipeline runner.
func NewRunner(st store.Store, classifier Classifier, fsys afero.Fs) *Runner {
	return &Runner{store: st, classifier: classifier, fs: fsys}
}

// Run executes the full pipeline on one input and persists the run report.
// Oracle failures degrade to the fallback classification; the run still
// reaches a terminal proposal. A missing input short-circuits with a flag
// and zero proposals. The returned error covers persistence failures only.
func (r *Runner) Run(ctx context.Context, inputID string) (*model.RunReport, error) {
	run := model.NewRunReport(model.TriggerNewInput, inputID)

	inp, err := r.store.GetInput(ctx, inputID)
	if errors.Is(err, store.ErrNotFound) {
		run.Flag(fmt.Sprintf("input not found: %s", inputID))
		run.End()
		if err := r.store.SaveRun(ctx, run); err != nil {
			return nil, err
		}
		zap.L().Warn("pipeline: input vanished before run",
			zap.String("run_id", run.ID),
			zap.String("input_id", inputID),
		)
		return run, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: load input")
	}
	run.InputSummary = excerpt(inp.Content, summaryChars)

	// Stage 1: extract.
	content, note := extractContent(r.fs, inp)
	run.AddStep(model.StageExtract, note)

	// Stage 2: classify, falling back instead of failing.
	cls, err := r.classifier.Classify(ctx, content)
	if err != nil {
		zap.L().Warn("pipeline: classification fell back",
			zap.String("run_id", run.ID),
			zap.Error(err),
		)
		cls = fallbackClassification(err, content)
	}
	run.AddStep(model.StageClassify, fmt.Sprintf(
		"entity=%s, context=%s, confidence=%.2f", cls.Entity, cls.Context, cls.Confidence))

	// Stage 3: link detect.
	refs := links.Extract(content)
	run.AddStep(model.StageLinkDetect, linkDetectResult(refs))

	// Stage 4: propose.
	proposal := buildProposal(run.ID, inp, content, cls, refs)
	if err := r.store.SaveProposal(ctx, proposal); err != nil {
		return nil, eris.Wrap(err, "pipeline: save proposal")
	}
	run.Proposals = append(run.Proposals, proposal.ID)
	run.AddStep(model.StagePropose, fmt.Sprintf("created proposal %s", proposal.ID))

	run.End()
	if err := r.store.SaveRun(ctx, run); err != nil {
		return nil, eris.Wrap(err, "pipeline: save run")
	}

	zap.L().Info("pipeline run complete",
		zap.String("run_id", run.ID),
		zap.String("input_id", inputID),
		zap.String("proposal_id", proposal.ID),
		zap.Float64("confidence", cls.Confidence),
	)
	return run, nil
}

func linkDetectResult(refs []string) string {
	if len(refs) == 0 {
		return "found 0 links"
	}
	preview := refs
	suffix := ""
	if len(preview) > linkPreviewCount {
		preview = preview[:linkPreviewCount]
		suffix = "..."
	}
	return fmt.Sprintf("found %d links: %s%s", len(refs), strings.Join(preview, ", "), suffix)
}

func buildProposal(runID string, inp *model.Input, content string, cls model.Classification, refs []string) *model.Proposal {
	title := cls.SuggestedTitle
	if title == "" {
		title = strings.TrimSpace(excerpt(content, titleFallbackChars))
	}

	suggested := model.SuggestedEntry{
		Title:   title,
		Entity:  cls.Entity,
		Context: cls.Context,
		Content: content,
		Links:   refs,
	}
	evidence := model.Evidence{
		SourceInput:   inp.ID,
		ExtractedFrom: title,
	}
	return model.NewProposal(runID, suggested, evidence, cls.Confidence, cls.Reason)
}
