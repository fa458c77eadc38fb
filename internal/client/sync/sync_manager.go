package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	gosync "sync"

	"github.com/gofrs/flock"
	"github.com/openmirror/mirrorbox/internal/utils"
)

const (
	mappingFile   = "file_map.json"
	containerFile = "container_id.txt"
	lockFile      = "mirrorbox.lock"
)

var ErrStateLocked = errors.New("state dir locked by another instance")

// Manager owns one watched directory and its sync state. The state dir is
// single-writer by construction: a file lock keeps a second instance from
// racing the mapping and container documents.
type Manager struct {
	watchDir   string
	stateDir   string
	watcher    *FileWatcher
	reconciler *Reconciler
	flock      *flock.Flock
	wg         gosync.WaitGroup
}

// NewManager builds the sync pipeline for a watched directory. The remote
// container mirroring it is named after the directory's base name.
func NewManager(remote RemoteDrive, watchDir, stateDir string) *Manager {
	mapping := NewMappingStore(filepath.Join(stateDir, mappingFile))
	resolver := NewCachedContainerResolver(remote, filepath.Join(stateDir, containerFile), filepath.Base(watchDir))
	ops := NewSyncOps(remote, mapping, NewConnectivityProbe())

	return &Manager{
		watchDir:   watchDir,
		stateDir:   stateDir,
		watcher:    NewFileWatcher(watchDir),
		reconciler: NewReconciler(ops, resolver),
		flock:      flock.New(filepath.Join(stateDir, lockFile)),
	}
}

// Start locks the state dir, resolves the mirror container and begins
// processing events. An unresolvable container is fatal; the watch loop does
// not start.
func (m *Manager) Start(ctx context.Context) error {
	slog.Info("sync manager start", "watch", m.watchDir, "state", m.stateDir)

	if err := m.lock(); err != nil {
		return err
	}

	if _, err := m.reconciler.EnsureContainer(ctx); err != nil {
		m.unlock()
		return err
	}

	if err := m.watcher.Start(ctx); err != nil {
		m.unlock()
		return fmt.Errorf("start watcher: %w", err)
	}

	m.wg.Add(1)
	go m.processEvents(ctx)

	return nil
}

// processEvents handles notifications serially in delivery order. A slow
// remote call delays later events but never drops them; a failure for one
// file never terminates the loop.
func (m *Manager) processEvents(ctx context.Context) {
	defer m.wg.Done()

	for ev := range m.watcher.Events() {
		res := m.reconciler.Handle(ctx, ev)
		if res == nil {
			continue
		}
		if res.Failed() {
			slog.Error("sync failed", "result", res)
			continue
		}
		slog.Info("sync", "result", res)
	}
}

func (m *Manager) Stop() error {
	slog.Info("sync manager stop")
	m.watcher.Stop()
	m.wg.Wait()
	return m.unlock()
}

func (m *Manager) lock() error {
	if err := utils.EnsureDir(m.stateDir); err != nil {
		return fmt.Errorf("create state dir %s: %w", m.stateDir, err)
	}

	locked, err := m.flock.TryLock()
	if err != nil {
		return fmt.Errorf("lock state dir: %w", err)
	}
	if !locked {
		return ErrStateLocked
	}
	return nil
}

func (m *Manager) unlock() error {
	return m.flock.Unlock()
}
