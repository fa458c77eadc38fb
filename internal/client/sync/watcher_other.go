//go:build !linux

package sync

import (
	"os"

	"github.com/rjeczalik/notify"
)

// watchEvents is the portable notify event set. Renames carry no
// destination path on these platforms, so moved events are emitted with an
// unknown destination and the reconciler ignores them.
var watchEvents = []notify.Event{
	notify.Create,
	notify.Write,
	notify.Remove,
	notify.Rename,
}

// portableTranslator remembers which paths were directories when they were
// created or written, because by the time a Remove or Rename arrives the path
// is gone and can no longer be stat'ed.
type portableTranslator struct {
	dirs map[string]bool
}

func newEventTranslator() eventTranslator {
	return &portableTranslator{dirs: make(map[string]bool)}
}

func (t *portableTranslator) translate(ei notify.EventInfo) []Event {
	path := ei.Path()
	switch ei.Event() {
	case notify.Create:
		return []Event{{Kind: EventCreated, Path: path, IsDir: t.observe(path)}}
	case notify.Write:
		return []Event{{Kind: EventModified, Path: path, IsDir: t.observe(path)}}
	case notify.Remove:
		return []Event{{Kind: EventDeleted, Path: path, IsDir: t.forget(path)}}
	case notify.Rename:
		return []Event{{Kind: EventMoved, Path: path, IsDir: t.forget(path)}}
	}
	return nil
}

func (t *portableTranslator) flushStale() []Event { return nil }

// observe stats a live path and records whether it is a directory. A path
// that vanished between the notification and the stat keeps its last known
// classification.
func (t *portableTranslator) observe(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return t.dirs[path]
	}
	if info.IsDir() {
		t.dirs[path] = true
		return true
	}
	delete(t.dirs, path)
	return false
}

// forget returns the last known classification for a now-gone path and drops
// its record.
func (t *portableTranslator) forget(path string) bool {
	wasDir := t.dirs[path]
	delete(t.dirs, path)
	return wasDir
}
