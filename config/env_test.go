package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSnapshot, "/tmp/screen.png")
	t.Setenv(EnvAgent, "10.0.0.5:12010")
	t.Setenv(EnvTargetScreen, "Screen 1")
	t.Setenv(EnvTimeout, "1.5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/screen.png", cfg.Snapshot.Path)
	assert.Equal(t, ProviderAgent, cfg.Screens.Provider)
	assert.Equal(t, "10.0.0.5:12010", cfg.Screens.Agent)

	target, err := cfg.TargetScreen()
	require.NoError(t, err)
	assert.Equal(t, 1, target)

	opts, err := cfg.RecognitionOptions()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, opts.Timeout)
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	path := writeConfig(t, "[snapshot]\npath = screen.png\n")
	t.Setenv(EnvSnapshot, "other.png")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.png", cfg.Snapshot.Path)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.ErrorContains(t, err, EnvTimeout)

	t.Setenv(EnvTimeout, "1")
	t.Setenv(EnvTargetScreen, "left monitor")
	_, err = Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCREENLOCATOR_LAYOUT=layout.ini\nSCREENLOCATOR_SNAPSHOT=from-file.png\n"), 0o644))

	// already set variables win over the file
	t.Setenv(EnvSnapshot, "from-env.png")
	t.Setenv(EnvLayout, "")
	require.NoError(t, os.Unsetenv(EnvLayout))

	loaded, err = LoadDotEnv(path)
	require.NoError(t, err)
	assert.True(t, loaded)

	assert.Equal(t, "layout.ini", os.Getenv(EnvLayout))
	assert.Equal(t, "from-env.png", os.Getenv(EnvSnapshot))
}
