package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresWatchDir(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrNoWatchDir)
}

func TestValidateRejectsMissingWatchDir(t *testing.T) {
	cfg := &Config{WatchDir: filepath.Join(t.TempDir(), "nope")}
	assert.Error(t, cfg.Validate())
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := &Config{WatchDir: t.TempDir()}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultStateDir, cfg.StateDir)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
}

func TestValidateRejectsBadServerURL(t *testing.T) {
	cfg := &Config{WatchDir: t.TempDir(), ServerURL: "not a url"}
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := &Config{
		WatchDir:  "/data/photos",
		StateDir:  "/data/.mirrorbox",
		ServerURL: "https://mirror.example.com",
		APIToken:  "tok123",
		Path:      path,
	}
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, json.Unmarshal(data, &loaded))

	assert.Equal(t, cfg.WatchDir, loaded.WatchDir)
	assert.Equal(t, cfg.StateDir, loaded.StateDir)
	assert.Equal(t, cfg.ServerURL, loaded.ServerURL)
	assert.Equal(t, cfg.APIToken, loaded.APIToken)
	// Path is runtime-only and must not leak into the document
	assert.Empty(t, loaded.Path)
}
