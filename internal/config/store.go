package config

import (
	"sync"
)

// Group identifies which part of Config a change affects, for
// listeners that only care about one area (e.g. the candidate window
// only needs Layout and Theme changes, not Clipboard ones).
type Group int

const (
	GroupLayout Group = iota
	GroupTheme
	GroupClipboard
)

// ChangeEvent is delivered to every Store.OnChange listener on any
// mutation, and additionally to any Store.OnGroupChange listener
// registered for the same Group.
type ChangeEvent struct {
	Key   string
	Group Group
}

// Store wraps a Config with clamped typed setters and a
// change-notification fan-out: a generic listener set fired on every
// change, plus per-Group listener sets, using plain Go callback slices
// under a mutex in place of Qt-style signal/slot wiring.
type Store struct {
	mu       sync.RWMutex
	cfg      Config
	path     string
	onChange []func(ChangeEvent)
	onGroup  map[Group][]func(ChangeEvent)
}

// NewStore wraps cfg (a copy is taken) for path, used by Save.
func NewStore(path string, cfg *Config) *Store {
	return &Store{
		cfg:     *cfg,
		path:    path,
		onGroup: make(map[Group][]func(ChangeEvent)),
	}
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// OnChange registers a listener fired on every mutation.
func (s *Store) OnChange(fn func(ChangeEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// OnGroupChange registers a listener fired only for mutations tagged
// with group.
func (s *Store) OnGroupChange(group Group, fn func(ChangeEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onGroup[group] = append(s.onGroup[group], fn)
}

func (s *Store) notify(key string, group Group) {
	event := ChangeEvent{Key: key, Group: group}
	for _, fn := range s.onChange {
		fn(event)
	}
	for _, fn := range s.onGroup[group] {
		fn(event)
	}
}

// SetPageSize clamps v to [1, 10] before applying it, per spec.
func (s *Store) SetPageSize(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Layout.PageSize = clamp(v, 1, 10)
	s.notify("layout.page_size", GroupLayout)
}

// SetExpandedRows clamps v to [1, 5].
func (s *Store) SetExpandedRows(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Layout.ExpandedRows = clamp(v, 1, 5)
	s.notify("layout.expanded_rows", GroupLayout)
}

// SetDirection sets the candidate layout direction verbatim. cmd/suyand
// treats "vertical" as a vertical layout and any other value as
// horizontal.
func (s *Store) SetDirection(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Layout.Direction = v
	s.notify("layout.direction", GroupLayout)
}

// SetTheme changes the active theme name.
func (s *Store) SetTheme(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.ThemeName = name
	s.notify("theme", GroupTheme)
}

// SetClipboardRetention clamps maxAgeDays and maxCount to
// non-negative values (0 meaning unbounded).
func (s *Store) SetClipboardRetention(maxAgeDays, maxCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Clipboard.MaxAgeDays = clamp(maxAgeDays, 0, 3650)
	s.cfg.Clipboard.MaxCount = clamp(maxCount, 0, 100000)
	s.notify("clipboard.retention", GroupClipboard)
}

// SetClipboardEnabled toggles whether the clipboard history subsystem
// runs at all.
func (s *Store) SetClipboardEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Clipboard.Enabled = enabled
	s.notify("clipboard.enabled", GroupClipboard)
}

// Save persists the current configuration to the Store's path.
func (s *Store) Save() error {
	s.mu.RLock()
	cfg := s.cfg
	path := s.path
	s.mu.RUnlock()
	return Save(path, &cfg)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
