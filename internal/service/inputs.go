package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mempocket/mempocket/internal/model"
)

// AddText captures raw text into the inbox.
func (s *Service) AddText(ctx context.Context, content string, typ model.InputType) (*model.Input, error) {
	inp := model.NewInput(typ, content, "")
	if err := s.store.SaveInput(ctx, inp); err != nil {
		return nil, err
	}
	return inp, nil
}

// AddFile captures a file reference into the inbox. Plain-text files are
// read up front so the pipeline can still run if the file later moves;
// everything else stores a reference marker.
func (s *Service) AddFile(ctx context.Context, path string) (*model.Input, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	content := fmt.Sprintf("[File: %s]", filepath.Base(abs))
	ext := strings.ToLower(filepath.Ext(abs))
	if ext == ".txt" || ext == ".md" {
		if data, err := afero.ReadFile(s.fs, abs); err == nil {
			content = string(data)
		}
	}

	inp := model.NewInput(model.InputTypeFile, content, abs)
	if err := s.store.SaveInput(ctx, inp); err != nil {
		return nil, err
	}
	return inp, nil
}

// ListInputs returns inbox items, newest first.
func (s *Service) ListInputs(ctx context.Context) ([]model.Input, error) {
	return s.store.ListInputs(ctx)
}

// Process runs the classification pipeline on one captured input.
func (s *Service) Process(ctx context.Context, inputID string) (*model.RunReport, error) {
	return s.runner.Run(ctx, inputID)
}

// QuickAdd captures text and immediately runs the pipeline on it.
func (s *Service) QuickAdd(ctx context.Context, content string) (*model.Input, *model.RunReport, error) {
	inp, err := s.AddText(ctx, content, model.InputTypeText)
	if err != nil {
		return nil, nil, err
	}
	run, err := s.runner.Run(ctx, inp.ID)
	if err != nil {
		return inp, nil, err
	}
	return inp, run, nil
}
