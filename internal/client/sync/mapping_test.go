package sync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMapping(t *testing.T) *MappingStore {
	t.Helper()
	return NewMappingStore(filepath.Join(t.TempDir(), "file_map.json"))
}

func TestMappingStorePutGet(t *testing.T) {
	m := newTestMapping(t)

	_, ok := m.Get("report.txt")
	assert.False(t, ok)

	m.Put("report.txt", "id123")
	id, ok := m.Get("report.txt")
	require.True(t, ok)
	assert.Equal(t, "id123", id)

	// putting a second name keeps the first
	m.Put("notes.md", "id456")
	id, ok = m.Get("report.txt")
	require.True(t, ok)
	assert.Equal(t, "id123", id)
}

func TestMappingStoreMissingDocument(t *testing.T) {
	m := newTestMapping(t)

	_, ok := m.Get("anything")
	assert.False(t, ok)

	// removing against a missing document is a no-op
	m.Remove("anything")
	assert.NoFileExists(t, m.path)
}

func TestMappingStoreRemove(t *testing.T) {
	m := newTestMapping(t)

	m.Put("report.txt", "id123")
	m.Remove("report.txt")

	_, ok := m.Get("report.txt")
	assert.False(t, ok)

	// removing twice is a no-op
	m.Remove("report.txt")
}

func TestMappingStoreCorruptionSelfHeal(t *testing.T) {
	m := newTestMapping(t)

	err := os.WriteFile(m.path, []byte("{not json!"), 0o644)
	require.NoError(t, err)

	// a corrupt document reads as absent, not as an error
	_, ok := m.Get("report.txt")
	assert.False(t, ok)

	// the next write recreates the document with exactly the new record
	m.Put("report.txt", "id123")

	data, err := os.ReadFile(m.path)
	require.NoError(t, err)

	var mapping map[string]string
	require.NoError(t, json.Unmarshal(data, &mapping))
	assert.Equal(t, map[string]string{"report.txt": "id123"}, mapping)
}

func TestMappingStoreDocumentIsFlat(t *testing.T) {
	m := newTestMapping(t)

	m.Put("a.txt", "id-a")
	m.Put("b.txt", "id-b")
	m.Remove("a.txt")

	data, err := os.ReadFile(m.path)
	require.NoError(t, err)

	var mapping map[string]string
	require.NoError(t, json.Unmarshal(data, &mapping))
	assert.Equal(t, map[string]string{"b.txt": "id-b"}, mapping)
}
