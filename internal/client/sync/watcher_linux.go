//go:build linux

package sync

import (
	"time"

	"github.com/rjeczalik/notify"
	"golang.org/x/sys/unix"
)

// watchEvents uses the inotify-specific event set so moves arrive as
// pairable IN_MOVED_FROM/IN_MOVED_TO, and writes arrive once per completed
// write via IN_CLOSE_WRITE instead of a burst of IN_MODIFY.
var watchEvents = []notify.Event{
	notify.InCreate,
	notify.InCloseWrite,
	notify.InDelete,
	notify.InMovedFrom,
	notify.InMovedTo,
}

type pendingMove struct {
	path  string
	isDir bool
	at    time.Time
}

// inotifyTranslator pairs move-from/move-to notifications by inotify cookie
// to produce moved events carrying both source and destination paths. A
// move-from whose pair never arrives (the file left the watched tree) is
// flushed as a moved event with an unknown destination.
type inotifyTranslator struct {
	pending map[uint32]pendingMove
}

func newEventTranslator() eventTranslator {
	return &inotifyTranslator{
		pending: make(map[uint32]pendingMove),
	}
}

func (t *inotifyTranslator) translate(ei notify.EventInfo) []Event {
	var cookie uint32
	var isDir bool
	if sys, ok := ei.Sys().(*unix.InotifyEvent); ok && sys != nil {
		cookie = sys.Cookie
		isDir = sys.Mask&unix.IN_ISDIR != 0
	}

	out := t.flushStale()

	switch ei.Event() {
	case notify.InCreate:
		out = append(out, Event{Kind: EventCreated, Path: ei.Path(), IsDir: isDir})

	case notify.InCloseWrite:
		out = append(out, Event{Kind: EventModified, Path: ei.Path(), IsDir: isDir})

	case notify.InDelete:
		out = append(out, Event{Kind: EventDeleted, Path: ei.Path(), IsDir: isDir})

	case notify.InMovedFrom:
		if cookie == 0 {
			out = append(out, Event{Kind: EventMoved, Path: ei.Path(), IsDir: isDir})
			break
		}
		t.pending[cookie] = pendingMove{path: ei.Path(), isDir: isDir, at: time.Now()}

	case notify.InMovedTo:
		if pm, ok := t.pending[cookie]; ok {
			delete(t.pending, cookie)
			out = append(out, Event{Kind: EventMoved, Path: pm.path, DestPath: ei.Path(), IsDir: pm.isDir})
			break
		}
		// moved into the tree from outside: same as a create
		out = append(out, Event{Kind: EventCreated, Path: ei.Path(), IsDir: isDir})
	}

	return out
}

func (t *inotifyTranslator) flushStale() []Event {
	var out []Event
	for cookie, pm := range t.pending {
		if time.Since(pm.at) < staleMoveFlushInterval {
			continue
		}
		delete(t.pending, cookie)
		out = append(out, Event{Kind: EventMoved, Path: pm.path, IsDir: pm.isDir})
	}
	return out
}
