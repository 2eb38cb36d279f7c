// Package changenotify turns filesystem notifications for a directory into
// change events that carry the item identifier of the affected entry.
package changenotify

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/islandboy/idlist/internal/fsmeta"
	"github.com/islandboy/idlist/internal/itemid"
)

// Watcher error backoff bounds.
const (
	errInitBackoff = 100 * time.Millisecond
	errMaxBackoff  = 5 * time.Second
	errBackoffMult = 2
)

// Kind classifies a change.
type Kind int

const (
	Created  Kind = iota + 1 // entry appeared
	Modified                 // entry content written
	Removed                  // entry deleted or renamed away
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is one change under the watched directory. Item is a simple list
// for the entry: full metadata for creates and writes, the name alone for
// removals.
type Event struct {
	Kind Kind
	Path string
	Item *itemid.List
}

// FsWatcher is the subset of *fsnotify.Watcher the Watcher needs.
type FsWatcher interface {
	Add(name string) error
	Remove(name string) error
	Close() error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
}

// fsnotifyWrapper adapts *fsnotify.Watcher, whose channels are fields, to
// FsWatcher.
type fsnotifyWrapper struct {
	w *fsnotify.Watcher
}

func (f *fsnotifyWrapper) Add(name string) error         { return f.w.Add(name) }
func (f *fsnotifyWrapper) Remove(name string) error      { return f.w.Remove(name) }
func (f *fsnotifyWrapper) Close() error                  { return f.w.Close() }
func (f *fsnotifyWrapper) Events() <-chan fsnotify.Event { return f.w.Events }
func (f *fsnotifyWrapper) Errors() <-chan error          { return f.w.Errors }

func newFsnotifyWatcher() (FsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &fsnotifyWrapper{w: w}, nil
}

// Watcher emits change events for one directory.
type Watcher struct {
	logger         *slog.Logger
	watcherFactory func() (FsWatcher, error)
	sleep          func(ctx context.Context, d time.Duration) error
}

// New returns a Watcher backed by fsnotify.
func New(logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Watcher{
		logger:         logger,
		watcherFactory: newFsnotifyWatcher,
		sleep:          sleepCtx,
	}
}

// Run watches dir (not recursively) and sends events to out until ctx is
// canceled or the underlying watcher shuts down. It does not close out.
func (w *Watcher) Run(ctx context.Context, dir string, out chan<- Event) error {
	fw, err := w.watcherFactory()
	if err != nil {
		return fmt.Errorf("changenotify: creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("changenotify: watching %s: %w", dir, err)
	}

	w.logger.Info("watching directory", slog.String("dir", dir))

	backoff := errInitBackoff

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events():
			if !ok {
				return nil
			}

			w.handle(ctx, ev, out)

			backoff = errInitBackoff

		case watchErr, ok := <-fw.Errors():
			if !ok {
				return nil
			}

			w.logger.Warn("filesystem watcher error",
				slog.String("error", watchErr.Error()),
				slog.Duration("backoff", backoff),
			)

			if err := w.sleep(ctx, backoff); err != nil {
				return nil
			}

			backoff = min(backoff*errBackoffMult, errMaxBackoff)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event, out chan<- Event) {
	// Mode changes alone are not reported.
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}

	var (
		change Event
		err    error
	)

	switch {
	case ev.Has(fsnotify.Create):
		change, err = w.statEvent(Created, ev.Name)
	case ev.Has(fsnotify.Write):
		change, err = w.statEvent(Modified, ev.Name)
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		change, err = removedEvent(ev.Name)
	default:
		return
	}

	if errors.Is(err, errVanished) {
		w.logger.Debug("entry vanished before stat", slog.String("path", ev.Name))
		return
	}

	if err != nil {
		w.logger.Warn("cannot describe change",
			slog.String("path", ev.Name), slog.String("error", err.Error()))

		return
	}

	select {
	case out <- change:
	case <-ctx.Done():
	}
}

var errVanished = errors.New("changenotify: entry vanished")

func (w *Watcher) statEvent(kind Kind, path string) (Event, error) {
	item, err := fsmeta.NewRecord(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Event{}, errVanished
		}

		return Event{}, err
	}

	return Event{Kind: kind, Path: path, Item: item}, nil
}

func removedEvent(path string) (Event, error) {
	item, err := fsmeta.NameOnly(filepath.Base(path), false)
	if err != nil {
		return Event{}, err
	}

	return Event{Kind: Removed, Path: path, Item: item}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
