package sync

import "fmt"

// EventKind is the normalized kind of a file-system notification.
type EventKind int

const (
	EventCreated EventKind = iota
	EventModified
	EventDeleted
	EventMoved
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventDeleted:
		return "deleted"
	case EventMoved:
		return "moved"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is a single normalized file-system notification. DestPath is set
// only for moved events, and only when the destination is known. Events are
// transient and consumed exactly once by the reconciler.
type Event struct {
	Kind     EventKind
	Path     string
	DestPath string
	IsDir    bool
}

func (e Event) String() string {
	if e.Kind == EventMoved {
		return fmt.Sprintf("%s %s -> %s", e.Kind, e.Path, e.DestPath)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Path)
}
