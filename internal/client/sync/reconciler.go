package sync

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	gosync "sync"
)

// trashMarkers are path substrings that mark the OS-level trash location. A
// move whose destination contains one is treated as a deletion of the
// source; any other move is ignored.
var trashMarkers = []string{
	"/.local/share/Trash",
	"/Trash",
}

const hiddenPrefix = "."

// Reconciler translates normalized file-system events into remote sync
// operations. It is a stateless dispatcher apart from the lazily resolved
// container identity.
type Reconciler struct {
	ops        *SyncOps
	containers *CachedContainerResolver

	mu          gosync.Mutex
	containerID string
}

func NewReconciler(ops *SyncOps, containers *CachedContainerResolver) *Reconciler {
	return &Reconciler{
		ops:        ops,
		containers: containers,
	}
}

// EnsureContainer resolves the mirror container identity once and caches it
// for the process lifetime. Called at watcher start; a failure here is a
// fatal precondition for the run.
func (r *Reconciler) EnsureContainer(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.containerID != "" {
		return r.containerID, nil
	}

	id, err := r.containers.Resolve(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve container: %w", err)
	}

	r.containerID = id
	return id, nil
}

// Handle applies the filtering policy and dispatches one event. It returns
// nil for filtered events. Errors never escape: failures surface in the
// returned result so processing of subsequent events continues.
//
// The policy:
//   - directory subjects are ignored unconditionally
//   - base names starting with a dot are ignored
//   - created and modified both map to upload-or-update
//   - deleted maps to delete by base name
//   - moved is a delete of the source base name only when the destination
//     contains a trash marker; every other move is ignored
func (r *Reconciler) Handle(ctx context.Context, ev Event) *SyncResult {
	if ev.IsDir {
		return nil
	}

	name := filepath.Base(ev.Path)
	if strings.HasPrefix(name, hiddenPrefix) {
		return nil
	}

	switch ev.Kind {
	case EventCreated, EventModified:
		containerID, err := r.EnsureContainer(ctx)
		if err != nil {
			return &SyncResult{Op: OpUpload, Name: name, Status: StatusFailed, Err: err}
		}
		return r.ops.UploadOrUpdate(ctx, containerID, ev.Path)

	case EventDeleted:
		return r.ops.Delete(ctx, name)

	case EventMoved:
		if !movedToTrash(ev.DestPath) {
			slog.Debug("ignoring move", "path", ev.Path, "dest", ev.DestPath)
			return nil
		}
		return r.ops.Delete(ctx, name)

	default:
		slog.Debug("ignoring event", "event", ev)
		return nil
	}
}

func movedToTrash(destPath string) bool {
	if destPath == "" {
		return false
	}
	for _, marker := range trashMarkers {
		if strings.Contains(destPath, marker) {
			return true
		}
	}
	return false
}
