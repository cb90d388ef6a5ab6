package dataset

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher calls onChange (debounced) whenever the dataset file is written,
// created or replaced.
type Watcher struct {
	fs       *fsnotify.Watcher
	target   string
	debounce time.Duration
	onChange func()
	log      *zap.SugaredLogger

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// Watch starts watching path. The parent directory is watched so editors that
// save by rename are still seen.
func Watch(path string, debounce time.Duration, onChange func(), log *zap.SugaredLogger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		fs:       fsw,
		target:   abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop()
	log.Debugw("watching dataset", "path", abs)
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer w.fs.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debugw("dataset file changed", "file", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.onChange)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Errorw("file watcher error", "error", err)
		case <-w.stopCh:
			return
		}
	}
}

// Close stops the watcher and waits for its goroutine. Safe to call twice.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
	return nil
}
