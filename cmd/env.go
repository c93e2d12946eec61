package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"

	"github.com/mempocket/mempocket/internal/pipeline"
	"github.com/mempocket/mempocket/internal/service"
	"github.com/mempocket/mempocket/internal/store"
	"github.com/mempocket/mempocket/pkg/anthropic"
)

// appEnv holds the store and service shared by all commands.
type appEnv struct {
	Store   *store.FileStore
	Service *service.Service
}

// initEnv builds the store, the classification oracle, the pipeline runner,
// and the service. The store layout is created if missing.
func initEnv(ctx context.Context) (*appEnv, error) {
	fsys := afero.NewOsFs()

	st := store.NewFileStore(fsys, cfg.Home)
	if err := st.Init(ctx); err != nil {
		return nil, eris.Wrap(err, "init store")
	}

	// With no API key configured the oracle fails on first use and every
	// run degrades to the fallback classification, which is the intended
	// offline behavior.
	client := anthropic.NewClient(cfg.Anthropic.Key,
		anthropic.WithRateLimit(cfg.Anthropic.RequestsPerSec, 2))
	classifier := pipeline.NewOracleClassifier(client, cfg.Anthropic)
	runner := pipeline.NewRunner(st, classifier, fsys)

	return &appEnv{
		Store:   st,
		Service: service.New(st, runner, fsys, cfg.Home),
	}, nil
}
