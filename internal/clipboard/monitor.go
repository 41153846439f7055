package clipboard

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Content is a clipboard snapshot handed to Monitor's callback. Data
// holds the raw bytes: UTF-8 text for ContentText, encoded image bytes
// for ContentImage.
type Content struct {
	Type      ContentType
	Data      []byte
	Hash      string
	Format    string
	SourceApp string
	Seen      time.Time
}

// Accessor is the platform-specific view onto the system clipboard.
// The default accessor (accessor_default.go) only reads text via
// atotto/clipboard; a build with richer platform integration can
// supply one that also surfaces images and the source application.
type Accessor interface {
	Read() (Content, error)
}

// Monitor polls the system clipboard on an interval and reports
// distinct content to Handle. Distinctness is judged by SHA-256 over
// the raw bytes, mirroring how the store itself dedups records.
type Monitor struct {
	mu       sync.Mutex
	accessor Accessor
	interval time.Duration
	lastHash string
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}

	Handle func(Content)
}

// NewMonitor creates a Monitor that polls accessor every interval.
func NewMonitor(accessor Accessor, interval time.Duration) *Monitor {
	return &Monitor{accessor: accessor, interval: interval}
}

// Start begins polling in a background goroutine. Calling Start twice
// without an intervening Stop is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.mu.Unlock()

	go m.loop()
}

// Stop halts polling and waits for the poll goroutine to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	done := m.doneCh
	m.mu.Unlock()

	<-done
}

func (m *Monitor) loop() {
	defer close(m.doneCh)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	content, err := m.accessor.Read()
	if err != nil || content.Type == ContentUnknown {
		return
	}

	sum := sha256.Sum256(content.Data)
	hash := hex.EncodeToString(sum[:])

	m.mu.Lock()
	if hash == m.lastHash {
		m.mu.Unlock()
		return
	}
	m.lastHash = hash
	handle := m.Handle
	m.mu.Unlock()

	content.Hash = hash
	content.Seen = time.Now()

	if handle != nil {
		handle(content)
	}
}
