package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.Home))
	assert.Equal(t, ".mempocket", filepath.Base(cfg.Home))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Anthropic.TimeoutSecs)
	assert.Equal(t, 8787, cfg.Server.Port)
}

func TestLoad_EnvOverridesHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MEM_HOME", "/custom/store")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/custom/store", cfg.Home)
}

func TestSetHome_PersistsAndPreserves(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, SetHome(filepath.Join(home, "pocket")))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pocket"), cfg.Home)

	// A second write keeps the key readable.
	require.NoError(t, SetHome(filepath.Join(home, "other")))
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "other"), cfg.Home)
}
