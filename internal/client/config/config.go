package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/openmirror/mirrorbox/internal/utils"
)

var (
	home, _           = os.UserHomeDir()
	DefaultConfigPath = filepath.Join(home, ".mirrorbox", "config.json")
	DefaultStateDir   = filepath.Join(home, ".mirrorbox")
	DefaultServerURL  = "https://api.mirrorbox.dev"
	DefaultLogFile    = filepath.Join(home, ".mirrorbox", "logs", "client.log")
)

var (
	ErrNoWatchDir = errors.New("config: watch dir missing")
)

type Config struct {
	WatchDir  string `json:"watch_dir"`
	StateDir  string `json:"state_dir"`
	ServerURL string `json:"server_url"`
	APIToken  string `json:"api_token"`
	Path      string `json:"-"`
}

// Validate checks the startup preconditions and normalizes paths. The watch
// dir must already exist; the state dir is created lazily by the sync
// manager.
func (c *Config) Validate() error {
	if c.WatchDir == "" {
		return ErrNoWatchDir
	}

	watchDir, err := utils.ResolvePath(c.WatchDir)
	if err != nil {
		return fmt.Errorf("config: resolve watch dir: %w", err)
	}
	if !utils.DirExists(watchDir) {
		return fmt.Errorf("config: watch dir %q does not exist or is not a directory", watchDir)
	}
	c.WatchDir = watchDir

	if c.StateDir == "" {
		c.StateDir = DefaultStateDir
	}
	stateDir, err := utils.ResolvePath(c.StateDir)
	if err != nil {
		return fmt.Errorf("config: resolve state dir: %w", err)
	}
	c.StateDir = stateDir

	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if _, err := url.ParseRequestURI(c.ServerURL); err != nil {
		return fmt.Errorf("config: invalid server url %q: %w", c.ServerURL, err)
	}

	return nil
}

// Save persists the effective config so the next run can omit flags.
func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
