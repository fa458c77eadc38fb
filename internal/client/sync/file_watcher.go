package sync

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/rjeczalik/notify"
)

const (
	eventBufferSize = 64

	// staleMoveFlushInterval bounds how long an unpaired move-from waits for
	// its matching move-to before being flushed with an unknown destination.
	staleMoveFlushInterval = 500 * time.Millisecond
)

// eventTranslator normalizes raw OS notifications into Events. Platform
// implementations live in watcher_linux.go / watcher_other.go.
type eventTranslator interface {
	translate(ei notify.EventInfo) []Event
	flushStale() []Event
}

// FileWatcher subscribes to recursive OS-level notifications for a directory
// tree and delivers normalized Events in the order the OS reports them. No
// coalescing is performed and no event is ever dropped: a slow consumer backs
// events up into an internal queue while the raw channel keeps draining.
type FileWatcher struct {
	watchDir string
	raw      chan notify.EventInfo
	events   chan Event
	done     chan struct{}
	stopOnce gosync.Once
	wg       gosync.WaitGroup
}

func NewFileWatcher(watchDir string) *FileWatcher {
	return &FileWatcher{
		watchDir: watchDir,
		done:     make(chan struct{}),
	}
}

func (fw *FileWatcher) Start(ctx context.Context) error {
	slog.Info("file watcher start", "dir", fw.watchDir)

	fw.raw = make(chan notify.EventInfo, eventBufferSize)
	fw.events = make(chan Event, eventBufferSize)

	recursivePath := fw.watchDir + "/..."
	if err := notify.Watch(recursivePath, fw.raw, watchEvents...); err != nil {
		return err
	}

	fw.wg.Add(1)
	go fw.translateLoop(ctx)

	return nil
}

func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		slog.Info("file watcher stopping")
		close(fw.done)
		if fw.raw != nil {
			notify.Stop(fw.raw)
		}
		fw.wg.Wait()
		slog.Info("file watcher stopped")
	})
}

// Events returns the channel of normalized events. The channel is closed
// when the watcher stops.
func (fw *FileWatcher) Events() <-chan Event {
	return fw.events
}

// translateLoop drains raw notifications into an unbounded queue and delivers
// queued events to the consumer with a blocking send. Draining never stalls
// behind the consumer, so the OS-level buffer cannot overflow and no event is
// lost while the consumer is busy.
func (fw *FileWatcher) translateLoop(ctx context.Context) {
	defer func() {
		fw.wg.Done()
		close(fw.events)
	}()

	translator := newEventTranslator()
	ticker := time.NewTicker(staleMoveFlushInterval)
	defer ticker.Stop()

	var queue []Event

	for {
		// a send on a nil channel blocks forever, disabling the case
		var out chan Event
		var next Event
		if len(queue) > 0 {
			out = fw.events
			next = queue[0]
		}

		select {
		case <-ctx.Done():
			return
		case <-fw.done:
			return
		case out <- next:
			queue = queue[1:]
			slog.Debug("file watcher", "event", next)
		case <-ticker.C:
			queue = append(queue, translator.flushStale()...)
		case ei, ok := <-fw.raw:
			if !ok {
				return
			}
			queue = append(queue, translator.translate(ei)...)
		}
	}
}
