package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/mempocket/mempocket/internal/links"
	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/store"
)

// CreateEntry persists a manually authored entry and rebuilds the index.
func (s *Service) CreateEntry(ctx context.Context, title string, entity model.Entity, lifeContext model.Context, content string) (*model.Entry, error) {
	if !entity.Valid() {
		return nil, eris.New(fmt.Sprintf("entries: unknown entity %q", entity))
	}
	if !lifeContext.Valid() {
		return nil, eris.New(fmt.Sprintf("entries: unknown context %q", lifeContext))
	}

	entry := model.NewEntry(title, entity, lifeContext, content, links.Extract(content),
		model.Source{Type: model.InputTypeManual}, actorUser, "")
	if err := s.store.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateEntry replaces an entry's content and rebuilds the index.
func (s *Service) UpdateEntry(ctx context.Context, id, content string) (*model.Entry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Replace(content, links.Extract(content), actorUser)
	if err := s.store.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

// AppendEntry appends content to an entry and rebuilds the index.
func (s *Service) AppendEntry(ctx context.Context, id, content string) (*model.Entry, error) {
	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Append(content, actorUser)
	entry.Links = links.Extract(entry.Content)
	if err := s.store.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry removes an entry and rebuilds the index.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return err
	}
	_, err := s.Reindex(ctx)
	return err
}

// GetEntry looks an entry up by id first, then by title: an exact
// case-insensitive or slug-equal match against all entries.
func (s *Service) GetEntry(ctx context.Context, idOrTitle string) (*model.Entry, error) {
	entry, err := s.store.GetEntry(ctx, idOrTitle)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	lower := strings.ToLower(idOrTitle)
	slug := model.Slugify(idOrTitle)
	all, err := s.store.ListEntries(ctx, store.EntryFilter{})
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.ToLower(all[i].Title) == lower || model.Slugify(all[i].Title) == slug {
			return &all[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// ListEntries returns entries passing the filter, most recently updated
// first.
func (s *Service) ListEntries(ctx context.Context, filter store.EntryFilter) ([]model.Entry, error) {
	return s.store.ListEntries(ctx, filter)
}

// SearchEntries returns entries whose title, content, or raw links contain
// the query, case-insensitively, after entity/context filtering.
func (s *Service) SearchEntries(ctx context.Context, query string, filter store.EntryFilter) ([]model.Entry, error) {
	entries, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	matched := entries[:0]
	for _, e := range entries {
		if entryMatches(&e, q) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func entryMatches(e *model.Entry, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Content), q) {
		return true
	}
	for _, link := range e.Links {
		if strings.Contains(strings.ToLower(link), q) {
			return true
		}
	}
	return false
}

// Links returns the entries this entry links to, per the current index.
func (s *Service) Links(ctx context.Context, entryID string) ([]model.Entry, error) {
	index, err := s.store.GetIndex(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadEntries(ctx, index.Links[entryID])
}

// Backlinks returns the entries linking to this entry, per the current
// index.
func (s *Service) Backlinks(ctx context.Context, entryID string) ([]model.Entry, error) {
	index, err := s.store.GetIndex(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadEntries(ctx, index.Backlinks[entryID])
}

// loadEntries resolves ids to entries, skipping any deleted since the last
// rebuild. The index is a cache and may lag the store.
func (s *Service) loadEntries(ctx context.Context, ids []string) ([]model.Entry, error) {
	var out []model.Entry
	for _, id := range ids {
		entry, err := s.store.GetEntry(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *entry)
	}
	return out, nil
}
