package fs

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

const (
	watchBuffer   = 16
	debounceDelay = 50 * time.Millisecond
)

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, pattern string, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.store.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.store.Path, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceDelay)
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// run is the event loop. It owns the events channel: the channel is
// closed only after the debouncer has drained, so no send can race the
// close.
func (w *watchWorker) run(ctx context.Context) error {
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			w.processEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.store.handleWatchError(err)
		}
	}

	w.debouncer.stopAndWait(debounceDelay * 10)
	close(w.events)
	return nil
}

func (w *watchWorker) processEvent(ctx context.Context, event fsnotify.Event) {
	key, ok := w.store.keyFromPath(event.Name)
	if !ok {
		return
	}
	if match, err := doublestar.Match(w.pattern, key); err != nil || !match {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	if w.store.config.Logger != nil {
		w.store.config.Logger.Debug("collection changed on disk", "collection", key, "op", event.Op.String())
	}

	w.debouncer.add(key, core.Event{
		Type:       eType,
		Collection: key,
		Timestamp:  now().Unix(),
	}, func(e core.Event) {
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}
