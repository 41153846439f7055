package config

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads Config and theme files when they change on disk,
// supplementing the simple-rewrite save policy with a read-side
// convenience: an external editor or a settings UI process can write
// config.yaml or themes/*.yaml and have suyand pick it up without a
// restart.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	store   *Store
	log     *slog.Logger
	onTheme func(name string)
}

// NewWatcher creates a Watcher over the directory containing path
// (config.yaml) and themesDir, notifying store of config reloads and
// calling onTheme with the theme name whenever that theme's file
// changes. onTheme may be nil.
func NewWatcher(path, themesDir string, store *Store, onTheme func(name string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	if themesDir != "" {
		if err := fsw.Add(themesDir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return &Watcher{fsw: fsw, path: path, store: store, log: logger, onTheme: onTheme}, nil
}

// Run blocks, dispatching filesystem events until Close is called.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	if event.Name == w.path {
		cfg, err := Load(w.path)
		if err != nil {
			w.log.Warn("reload config", "error", err)
			return
		}
		w.store.mu.Lock()
		w.store.cfg = *cfg
		w.store.mu.Unlock()
		w.store.notify("reload", GroupLayout)
		w.store.notify("reload", GroupTheme)
		w.store.notify("reload", GroupClipboard)
		return
	}

	if w.onTheme != nil && filepath.Ext(event.Name) == ".yaml" {
		name := filepath.Base(event.Name)
		name = name[:len(name)-len(filepath.Ext(name))]
		w.onTheme(name)
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
