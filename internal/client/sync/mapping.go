package sync

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/openmirror/mirrorbox/internal/utils"
)

// MappingStore is the durable local name -> remote object identifier table.
// It is the single source of truth for "does this file already exist
// remotely". The persisted document is a flat JSON object so it stays
// human-inspectable.
//
// The read path degrades gracefully: a missing or corrupt document is
// treated as empty. The write path self-heals: a corrupt document is
// recreated on the next Put. Write failures are logged and swallowed so the
// store never aborts a sync operation.
type MappingStore struct {
	path string
}

func NewMappingStore(path string) *MappingStore {
	return &MappingStore{path: path}
}

// Get returns the remote identifier for a file name, or ok=false if the
// name was never uploaded or its record was removed.
func (m *MappingStore) Get(name string) (string, bool) {
	mapping := m.load()
	id, ok := mapping[name]
	return id, ok
}

// Put records name -> id. Never returns an error; failures are logged.
func (m *MappingStore) Put(name, id string) {
	mapping := m.load()
	mapping[name] = id
	if err := m.save(mapping); err != nil {
		slog.Error("mapping write failed", "path", m.path, "name", name, "error", err)
		return
	}
	slog.Info("mapping saved", "name", name, "id", id)
}

// Remove deletes the record for a file name. A missing document or an
// untracked name is a no-op with a warning.
func (m *MappingStore) Remove(name string) {
	if !utils.FileExists(m.path) {
		slog.Warn("mapping document does not exist", "path", m.path)
		return
	}

	mapping := m.load()
	if _, ok := mapping[name]; !ok {
		slog.Warn("name not found in mapping", "name", name)
		return
	}

	delete(mapping, name)
	if err := m.save(mapping); err != nil {
		slog.Error("mapping write failed", "path", m.path, "name", name, "error", err)
		return
	}
	slog.Info("mapping removed", "name", name)
}

// load reads the persisted mapping, treating a missing or unparseable
// document as empty.
func (m *MappingStore) load() map[string]string {
	mapping := make(map[string]string)

	data, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("mapping read failed", "path", m.path, "error", err)
		}
		return mapping
	}

	if err := json.Unmarshal(data, &mapping); err != nil {
		slog.Warn("corrupt mapping document, recreating on next write", "path", m.path, "error", err)
		return make(map[string]string)
	}

	return mapping
}

func (m *MappingStore) save(mapping map[string]string) error {
	if err := utils.EnsureParent(m.path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(mapping, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.path, data, 0o644)
}
