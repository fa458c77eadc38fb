package client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openmirror/mirrorbox/internal/client/config"
	"github.com/openmirror/mirrorbox/internal/client/sync"
	"github.com/openmirror/mirrorbox/internal/mirrorsdk"
)

// Client wires an authenticated SDK handle and a watch folder into a
// running mirror.
type Client struct {
	config *config.Config
	sdk    *mirrorsdk.MirrorSDK
	sync   *sync.Manager
}

func New(cfg *config.Config) (*Client, error) {
	sdk, err := mirrorsdk.New(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("create sdk: %w", err)
	}

	if cfg.APIToken != "" {
		sdk.SetToken(cfg.APIToken)
	}

	mgr := sync.NewManager(&remoteDrive{sdk: sdk}, cfg.WatchDir, cfg.StateDir)

	return &Client{
		config: cfg,
		sdk:    sdk,
		sync:   mgr,
	}, nil
}

// Start installs the watch subscription and blocks until the context is
// cancelled. Startup preconditions (state lock, container resolution) abort
// the run; per-event failures do not.
func (c *Client) Start(ctx context.Context) error {
	slog.Info("mirrorbox client start", "watch", c.config.WatchDir, "server", c.config.ServerURL)

	if err := c.sync.Start(ctx); err != nil {
		return fmt.Errorf("start sync manager: %w", err)
	}

	<-ctx.Done()
	slog.Info("received interrupt signal, stopping client")

	if err := c.sync.Stop(); err != nil {
		slog.Error("sync manager stop", "error", err)
	}
	c.sdk.Close()

	slog.Info("mirrorbox client stop")
	return nil
}
