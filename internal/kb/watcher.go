package kb

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a knowledge base file when it changes on disk. Long-running
// front ends use it to pick up rule edits between sessions without a restart;
// sessions already in flight keep the KnowledgeBase they were created with.
type Watcher struct {
	mu       sync.Mutex
	path     string
	fsw      *fsnotify.Watcher
	onReload func(*KnowledgeBase)
	log      *zap.Logger

	debounce  time.Duration
	lastEvent time.Time
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// NewWatcher creates a watcher for the given KB file. onReload is called with
// each successfully reloaded KnowledgeBase; load failures are logged and the
// previous KB stays in effect.
func NewWatcher(path string, log *zap.Logger, onReload func(*KnowledgeBase)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     path,
		fsw:      fsw,
		onReload: onReload,
		log:      log,
		debounce: 500 * time.Millisecond, // editors fire several events per save
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; events are handled in a goroutine
// until Stop is called.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory rather than the file: editors replace files on
	// save, which would drop a file-level watch.
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop ends watching and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.fsw.Close()
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.mu.Lock()
			if time.Since(w.lastEvent) < w.debounce {
				w.mu.Unlock()
				continue
			}
			w.lastEvent = time.Now()
			w.mu.Unlock()

			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("kb watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	k, err := Load(w.path)
	if err != nil {
		w.log.Warn("kb reload failed, keeping previous knowledge base",
			zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("knowledge base reloaded",
		zap.String("path", w.path),
		zap.Int("questions", len(k.Questions)),
		zap.Int("rules", len(k.Rules)),
		zap.Int("fasteners", len(k.Fasteners)))
	w.onReload(k)
}
