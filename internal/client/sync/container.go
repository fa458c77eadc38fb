package sync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/openmirror/mirrorbox/internal/utils"
)

// ContainerResolver finds or creates the single remote container that
// mirrors the watched directory.
type ContainerResolver struct {
	remote RemoteDrive
}

func NewContainerResolver(remote RemoteDrive) *ContainerResolver {
	return &ContainerResolver{remote: remote}
}

// Resolve queries the remote service for a non-trashed container exactly
// matching name, taking the first match, or creates one. A failure at
// either step is a fatal precondition for uploads in this run.
func (r *ContainerResolver) Resolve(ctx context.Context, name string) (string, error) {
	containers, err := r.remote.ListContainers(ctx, name)
	if err != nil {
		return "", fmt.Errorf("list containers: %w", err)
	}

	if len(containers) > 0 {
		id := containers[0].ID
		slog.Info("found existing container", "name", name, "id", id)
		return id, nil
	}

	id, err := r.remote.CreateContainer(ctx, name)
	if err != nil {
		return "", fmt.Errorf("create container %q: %w", name, err)
	}

	slog.Info("created new container", "name", name, "id", id)
	return id, nil
}

// CachedContainerResolver wraps ContainerResolver with a persisted local
// cache so repeated runs skip the remote lookup. The cache document holds a
// single whitespace-trimmed identifier.
type CachedContainerResolver struct {
	resolver  *ContainerResolver
	cachePath string
	name      string
}

func NewCachedContainerResolver(remote RemoteDrive, cachePath, name string) *CachedContainerResolver {
	return &CachedContainerResolver{
		resolver:  NewContainerResolver(remote),
		cachePath: cachePath,
		name:      name,
	}
}

// Resolve returns the cached identifier if present, otherwise resolves
// remotely and persists the result. A cache write failure is logged but the
// freshly resolved identifier is still returned.
func (c *CachedContainerResolver) Resolve(ctx context.Context) (string, error) {
	if id := c.readCache(); id != "" {
		return id, nil
	}

	id, err := c.resolver.Resolve(ctx, c.name)
	if err != nil {
		return "", err
	}

	c.writeCache(id)
	return id, nil
}

func (c *CachedContainerResolver) readCache() string {
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("container cache read failed", "path", c.cachePath, "error", err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (c *CachedContainerResolver) writeCache(id string) {
	if err := utils.EnsureParent(c.cachePath); err != nil {
		slog.Error("container cache write failed", "path", c.cachePath, "error", err)
		return
	}
	if err := os.WriteFile(c.cachePath, []byte(id), 0o644); err != nil {
		slog.Error("container cache write failed", "path", c.cachePath, "error", err)
	}
}
