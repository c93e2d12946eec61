package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/store"
)

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entry, err := f.svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "met [[Bob]] through her")

	require.NoError(t, err)
	assert.Equal(t, []string{"Bob"}, entry.Links)
	assert.Equal(t, model.InputTypeManual, entry.Source.Type)
	require.Len(t, entry.History, 1)
	assert.Equal(t, "user", entry.History[0].By)

	got, err := f.store.GetEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Title)
}

func TestCreateEntry_InvalidCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreateEntry(ctx, "Alice", "company", model.ContextLife, "")
	assert.Error(t, err)

	_, err = f.svc.CreateEntry(ctx, "Alice", model.EntityPeople, "hobby", "")
	assert.Error(t, err)
}

func TestCreateEntry_RebuildsIndex(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alice, err := f.svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)
	note, err := f.svc.CreateEntry(ctx, "Gym Notes", model.EntityLibrary, model.ContextLife, "met [[Alice]] there")
	require.NoError(t, err)

	index, err := f.store.GetIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, index.Links[note.ID])
	assert.Equal(t, []string{note.ID}, index.Backlinks[alice.ID])
}

func TestUpdateEntry_ReplacesContentAndLinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entry, err := f.svc.CreateEntry(ctx, "Notes", model.EntityLibrary, model.ContextLife, "about [[Alice]]")
	require.NoError(t, err)

	updated, err := f.svc.UpdateEntry(ctx, entry.ID, "now about [[Bob]]")

	require.NoError(t, err)
	assert.Equal(t, "now about [[Bob]]", updated.Content)
	assert.Equal(t, []string{"Bob"}, updated.Links)
	require.Len(t, updated.History, 2)
	assert.Equal(t, model.HistoryUpdated, updated.History[1].Action)
}

func TestAppendEntry_ReextractsLinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entry, err := f.svc.CreateEntry(ctx, "Notes", model.EntityLibrary, model.ContextLife, "about [[Alice]]")
	require.NoError(t, err)

	updated, err := f.svc.AppendEntry(ctx, entry.ID, "and also [[Bob]]")

	require.NoError(t, err)
	assert.Equal(t, "about [[Alice]]\n\nand also [[Bob]]", updated.Content)
	assert.Equal(t, []string{"Alice", "Bob"}, updated.Links)
	require.Len(t, updated.History, 2)
	assert.Equal(t, model.HistoryAppended, updated.History[1].Action)
}

func TestDeleteEntry_RemovesBacklinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alice, err := f.svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)
	note, err := f.svc.CreateEntry(ctx, "Notes", model.EntityLibrary, model.ContextLife, "met [[Alice]]")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEntry(ctx, note.ID))

	index, err := f.store.GetIndex(ctx)
	require.NoError(t, err)
	assert.Empty(t, index.Backlinks[alice.ID])

	_, err = f.svc.GetEntry(ctx, note.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetEntry_ByTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	entry, err := f.svc.CreateEntry(ctx, "Dr. Muñoz", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)

	byExact, err := f.svc.GetEntry(ctx, "dr. muñoz")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, byExact.ID)

	bySlug, err := f.svc.GetEntry(ctx, "Dr Munoz")
	require.NoError(t, err)
	assert.Equal(t, entry.ID, bySlug.ID)

	_, err = f.svc.GetEntry(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearchEntries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreateEntry(ctx, "Marathon Training", model.EntityProject, model.ContextLife, "16 week plan")
	require.NoError(t, err)
	_, err = f.svc.CreateEntry(ctx, "ReactJS", model.EntityLibrary, model.ContextWork, "hooks cheat sheet, see [[Marathon Training]] for nothing")
	require.NoError(t, err)

	byTitle, err := f.svc.SearchEntries(ctx, "marathon", store.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, byTitle, 2) // title match plus link match

	byContent, err := f.svc.SearchEntries(ctx, "cheat sheet", store.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, "ReactJS", byContent[0].Title)

	filtered, err := f.svc.SearchEntries(ctx, "marathon", store.EntryFilter{Entity: model.EntityProject})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	none, err := f.svc.SearchEntries(ctx, "zzz", store.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLinksAndBacklinks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alice, err := f.svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)
	note, err := f.svc.CreateEntry(ctx, "Notes", model.EntityLibrary, model.ContextLife, "met [[Alice]]")
	require.NoError(t, err)

	outgoing, err := f.svc.Links(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, alice.ID, outgoing[0].ID)

	incoming, err := f.svc.Backlinks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, note.ID, incoming[0].ID)

	empty, err := f.svc.Links(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
