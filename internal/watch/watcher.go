// Package watch signals when Steam rewrites the files a query reads.
//
// Steam touches several files in quick succession when an app is installed or
// played, so events are coalesced: one signal is sent once the directories have
// been quiet for the debounce period.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mmcdole/steamrun/internal/domain"
)

// DefaultDebounce is the quiet period before a change is signalled.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches a fixed set of directories.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	changes  chan struct{}
	watched  []string

	closeOnce sync.Once
}

// Dirs returns the directories whose contents feed a query: the install root's
// steamapps, config and librarycache directories plus each library folder's
// steamapps directory.
func Dirs(installRoot string, folders []*domain.LibraryFolder) []string {
	dirs := []string{
		filepath.Join(installRoot, "steamapps"),
		filepath.Join(installRoot, "config"),
		filepath.Join(installRoot, "appcache"),
		filepath.Join(installRoot, "appcache", "librarycache"),
	}
	seen := map[string]bool{}
	for _, d := range dirs {
		seen[d] = true
	}
	for _, f := range folders {
		d := f.SteamAppsDir()
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// New starts watching dirs. Directories that do not exist are skipped.
// A debounce of zero uses DefaultDebounce.
func New(dirs []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			if errors.Is(err, fs.ErrNotExist) || isNotDir(d) {
				logger.Debug("not watching missing directory", "path", d)
				continue
			}
			fsw.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
		w.watched = append(w.watched, d)
	}
	logger.Debug("watching steam directories", "count", len(w.watched))
	return w, nil
}

func isNotDir(path string) bool {
	info, err := os.Stat(path)
	return err != nil || !info.IsDir()
}

// Watched returns the directories actually being watched.
func (w *Watcher) Watched() []string {
	return w.watched
}

// Changes delivers one value per quiet period following a change. Signals are
// not queued: a receiver that falls behind sees a single pending signal.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			w.logger.Debug("steam file changed", "path", evt.Name, "op", evt.Op.String())
			if timer == nil {
				timer = time.AfterFunc(w.debounce, w.signal)
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Close stops watching. Run returns once the event channel is closed.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}
