package adapters

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/ports"
)

const defaultWatchDebounce = 500 * time.Millisecond

// FileWatcherAdapter watches the parent directories of the given files,
// which survives editors that replace files by rename, and filters events
// down to the files themselves.
type FileWatcherAdapter struct {
	Debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

func NewFileWatcherAdapter(debounce time.Duration) *FileWatcherAdapter {
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	return &FileWatcherAdapter{Debounce: debounce}
}

func (a *FileWatcherAdapter) Watch(ctx context.Context, paths []string) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	watched := map[string]struct{}{}
	dirs := map[string]struct{}{}
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to resolve watch path").
				WithCause(err)
		}
		watched[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("failed to watch directory " + dir).
				WithCause(err)
		}
		dirs[dir] = struct{}{}
	}

	a.mu.Lock()
	a.watcher = watcher
	a.mu.Unlock()

	changes := make(chan string, 1)
	go a.loop(ctx, watcher, watched, changes)
	return changes, nil
}

func (a *FileWatcherAdapter) loop(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]struct{}, changes chan<- string) {
	defer close(changes)
	var timer *time.Timer
	var timerC <-chan time.Time
	var last string
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if _, ok := watched[event.Name]; !ok {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Ctx(ctx).Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("watched file changed")
			last = event.Name
			if timer == nil {
				timer = time.NewTimer(a.Debounce)
			} else {
				timer.Reset(a.Debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			select {
			case changes <- last:
			case <-ctx.Done():
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Ctx(ctx).Warn().Err(err).Msg("file watcher error")
		}
	}
}

func (a *FileWatcherAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.watcher == nil {
		return nil
	}
	err := a.watcher.Close()
	a.watcher = nil
	return err
}

var _ ports.FileWatcherPort = (*FileWatcherAdapter)(nil)
