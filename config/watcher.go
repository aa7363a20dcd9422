package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/wabbit/errors"
	"github.com/teranos/wabbit/logger"
)

// ReloadCallback receives the freshly-loaded config after the watched file
// changes.
type ReloadCallback func(*Config) error

// Watcher watches one config file and triggers reload callbacks. Long
// feeds use it to pick up rate-limit changes without restarting.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher

	mu        sync.Mutex
	callbacks []ReloadCallback
	debounce  *time.Timer
}

// debouncePeriod coalesces the event bursts editors produce on save.
const debouncePeriod = 500 * time.Millisecond

// NewWatcher watches path for changes. Call Start to begin delivery and
// Stop when done.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch config file %s", path)
	}
	return &Watcher{path: path, watcher: fw}, nil
}

// OnReload registers a callback for config changes.
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends watching and releases the file handle.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debugw("Config file changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String(),
			)
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Config watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debouncePeriod, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFromFile(w.path)
	if err != nil {
		logger.Warnw("Config reload failed, keeping previous config",
			logger.FieldFile, w.path,
			logger.FieldError, err,
		)
		return
	}

	w.mu.Lock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		if err := cb(cfg); err != nil {
			logger.Warnw("Config reload callback failed", logger.FieldError, err)
		}
	}
	logger.Infow("Config reloaded", logger.FieldFile, w.path)
}
