// Package watch rebuilds a project whenever one of its source files changes.
// Events are debounced so a burst of editor writes triggers one rebuild.
package watch

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
	"github.com/The-Breeth/bui-compiler/internal/fsutil"
	"github.com/The-Breeth/bui-compiler/internal/merge"
)

// DefaultDebounce is the quiet period required before a rebuild fires.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes the directories holding a project's source files and
// invokes a callback after changes settle.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()

	stopCh chan struct{}
	doneCh chan struct{}
}

// New sets up a watcher over every directory under root that holds project
// files. The callback runs on the watcher's own goroutine.
func New(root string, debounce time.Duration, onChange func()) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files, err := fsutil.FindFilesByExtension(root, merge.Extension)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}
	dirs := fsutil.ParentDirs(files)
	if len(dirs) == 0 {
		dirs = []string{root}
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return &Watcher{
		watcher:  fsw,
		debounce: debounce,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Run processes events until the context is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.doneCh)
	logger := ctxlog.FromContext(ctx)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("source change detected", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			w.onChange()
		}
	}
}

// Close stops the watcher and waits for Run to return.
func (w *Watcher) Close() error {
	close(w.stopCh)
	err := w.watcher.Close()
	<-w.doneCh
	return err
}

// relevant filters events down to meaningful changes of project files.
func relevant(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, merge.Extension) {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
}
