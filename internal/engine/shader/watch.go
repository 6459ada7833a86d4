package shader

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/lowpoly/internal/logger"
)

// Watcher reports shader programs whose source files changed on disk.
type Watcher struct {
	fs      *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewWatcher watches dir for writes to .vert and .frag files.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating shader watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		fs:      fsw,
		changed: make(chan string, 32),
		done:    make(chan struct{}),
		log:     logger.Named("shader-watch"),
	}
	w.wg.Add(1)
	go w.run()

	w.log.Info("watching shaders", zap.String("dir", dir))
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, ok := programName(e.Name)
			if !ok {
				continue
			}
			select {
			case w.changed <- name:
			default:
				w.log.Warn("shader change dropped, queue full", zap.String("program", name))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Error("shader watch error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

// programName maps a source file to its program name.
func programName(path string) (string, bool) {
	ext := filepath.Ext(path)
	if ext != ".vert" && ext != ".frag" {
		return "", false
	}
	return strings.TrimSuffix(filepath.Base(path), ext), true
}

// Changed delivers the name of each program whose source changed.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Pending drains every queued change without blocking and returns the
// distinct program names in sorted order.
func (w *Watcher) Pending() []string {
	seen := make(map[string]bool)
	for {
		select {
		case name := <-w.changed:
			seen[name] = true
		default:
			names := make([]string, 0, len(seen))
			for n := range seen {
				names = append(names, n)
			}
			sort.Strings(names)
			return names
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
