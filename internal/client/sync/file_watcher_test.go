package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timeout waiting for file event")
		return Event{}
	}
}

func startWatcher(t *testing.T) (*FileWatcher, string) {
	t.Helper()

	tempDir := t.TempDir()

	// macos is funny =)
	// tmpdir lives in /var/folders but it's actually symlink to /private/var/folders
	tempDir, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err, "failed to evaluate symlinks")

	fw := NewFileWatcher(tempDir)
	require.NoError(t, fw.Start(t.Context()), "failed to start file watcher")
	t.Cleanup(fw.Stop)

	return fw, tempDir
}

func TestNewFileWatcher(t *testing.T) {
	fw := NewFileWatcher("/test/path")

	assert.Equal(t, "/test/path", fw.watchDir)
	assert.Nil(t, fw.events)
	assert.Nil(t, fw.raw)
	assert.NotNil(t, fw.done)
}

func TestFileWatcherCreate(t *testing.T) {
	fw, dir := startWatcher(t)

	testFile := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("hello world"), 0o644))

	ev := nextEvent(t, fw.Events())
	assert.Equal(t, EventCreated, ev.Kind)
	assert.Equal(t, testFile, ev.Path)
	assert.False(t, ev.IsDir)
}

func TestFileWatcherDelete(t *testing.T) {
	fw, dir := startWatcher(t)

	testFile := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("hello"), 0o644))

	// drain the create (and any write) events for the file
	ev := nextEvent(t, fw.Events())
	require.Equal(t, EventCreated, ev.Kind)

	require.NoError(t, os.Remove(testFile))

	for {
		ev = nextEvent(t, fw.Events())
		if ev.Kind == EventDeleted {
			break
		}
	}
	assert.Equal(t, testFile, ev.Path)
}

func TestFileWatcherMoveWithinTree(t *testing.T) {
	fw, dir := startWatcher(t)

	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	ev := nextEvent(t, fw.Events())
	require.Equal(t, EventCreated, ev.Kind)

	require.NoError(t, os.Rename(src, dst))

	for {
		ev = nextEvent(t, fw.Events())
		if ev.Kind == EventMoved {
			break
		}
	}
	assert.Equal(t, src, ev.Path)
	assert.Equal(t, dst, ev.DestPath)
}

func TestFileWatcherSlowConsumerLosesNothing(t *testing.T) {
	fw, dir := startWatcher(t)

	// burst well past the channel buffer while the consumer is idle
	const n = 4 * eventBufferSize
	want := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("f%03d.txt", i))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		want[path] = true
	}

	// let the backlog build up before draining a single event
	time.Sleep(500 * time.Millisecond)

	created := make(map[string]bool, n)
	deadline := time.After(10 * time.Second)
	for len(created) < n {
		select {
		case ev, ok := <-fw.Events():
			require.True(t, ok, "events channel closed early")
			if ev.Kind == EventCreated {
				created[ev.Path] = true
			}
		case <-deadline:
			require.FailNowf(t, "events lost", "got %d of %d created events", len(created), n)
		}
	}
	assert.Equal(t, want, created)
}

func TestFileWatcherStopClosesEvents(t *testing.T) {
	fw, _ := startWatcher(t)

	fw.Stop()

	select {
	case _, ok := <-fw.Events():
		assert.False(t, ok, "events channel should be closed after Stop")
	case <-time.After(2 * time.Second):
		assert.FailNow(t, "timeout waiting for events channel to close")
	}
}
