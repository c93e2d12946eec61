package service

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/internal/pipeline"
	"github.com/mempocket/mempocket/internal/store"
)

// --- Classifier Mock ---

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (model.Classification, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(model.Classification), args.Error(1)
}

var _ pipeline.Classifier = (*mockClassifier)(nil)

// --- Test fixture ---

type fixture struct {
	svc        *Service
	store      store.Store
	fs         afero.Fs
	classifier *mockClassifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fsys := afero.NewMemMapFs()
	st := store.NewFileStore(fsys, "/home/.mempocket")
	require.NoError(t, st.Init(context.Background()))

	classifier := &mockClassifier{}
	runner := pipeline.NewRunner(st, classifier, fsys)
	return &fixture{
		svc:        New(st, runner, fsys, "/home/.mempocket"),
		store:      st,
		fs:         fsys,
		classifier: classifier,
	}
}
