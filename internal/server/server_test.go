package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/pipeline"
	"github.com/mempocket/mempocket/internal/service"
	"github.com/mempocket/mempocket/internal/store"
)

// stubClassifier returns a fixed verdict; the HTTP layer never cares how
// classification happened.
type stubClassifier struct {
	cls model.Classification
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (model.Classification, error) {
	return s.cls, nil
}

func newTestServer(t *testing.T) (*Server, *service.Service) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	st := store.NewFileStore(fsys, "/home/.mempocket")
	require.NoError(t, st.Init(context.Background()))

	classifier := &stubClassifier{cls: model.Classification{
		Entity:         model.EntityPeople,
		Context:        model.ContextLife,
		Confidence:     0.9,
		SuggestedTitle: "Alice",
	}}
	runner := pipeline.NewRunner(st, classifier, fsys)
	svc := service.New(st, runner, fsys, "/home/.mempocket")
	return New(svc), svc
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_CreateAndGetEntry(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/entries", map[string]string{
		"title":   "Alice",
		"entity":  "people",
		"context": "life",
		"content": "met at the gym",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	rec = doJSON(t, srv, http.MethodGet, "/entries/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Alice", got.Title)
}

func TestServer_GetEntryNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/entries/nope", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CreateEntryInvalidCategory(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/entries", map[string]string{
		"title":   "Alice",
		"entity":  "company",
		"context": "life",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_ListEntriesFiltered(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, "Launch App", model.EntityProject, model.ContextWork, "")
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/entries?entity=people", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []model.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Alice", resp.Entries[0].Title)
}

func TestServer_Search(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, "Marathon Training", model.EntityProject, model.ContextLife, "16 week plan")
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/search?q=marathon", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []model.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Entries, 1)
}

func TestServer_SearchMissingQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/search", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_QuickAddAndReview(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/add", map[string]string{"content": "met [[Alice]] at the gym"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var added struct {
		Run model.RunReport `json:"run"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.Len(t, added.Run.Proposals, 1)
	proposalID := added.Run.Proposals[0]

	rec = doJSON(t, srv, http.MethodGet, "/proposals/"+proposalID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/proposals/"+proposalID+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entry model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	assert.Equal(t, "Alice", entry.Title)

	// Double-decide maps to conflict.
	rec = doJSON(t, srv, http.MethodPost, "/proposals/"+proposalID+"/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/proposals/"+proposalID+"/reject",
		map[string]string{"reason": "too late"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_QuickAddMissingContent(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/add", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_DeleteEntry(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodDelete, "/entries/"+entry.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/entries/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_LinksAndBacklinks(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	alice, err := svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)
	note, err := svc.CreateEntry(ctx, "Notes", model.EntityLibrary, model.ContextLife, "met [[Alice]]")
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/entries/"+note.ID+"/links", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entries []model.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, alice.ID, resp.Entries[0].ID)

	rec = doJSON(t, srv, http.MethodGet, "/entries/"+alice.ID+"/backlinks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, note.ID, resp.Entries[0].ID)
}

func TestServer_Status(t *testing.T) {
	srv, svc := newTestServer(t)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, "Alice", model.EntityPeople, model.ContextLife, "")
	require.NoError(t, err)

	rec := doJSON(t, srv, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status service.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 1, status.TotalEntries)
}
