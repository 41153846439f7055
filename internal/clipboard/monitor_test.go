package clipboard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeAccessor struct {
	mu  sync.Mutex
	seq []Content
	i   int
}

func (f *fakeAccessor) Read() (Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.i >= len(f.seq) {
		return f.seq[len(f.seq)-1], nil
	}
	c := f.seq[f.i]
	f.i++
	return c, nil
}

func TestMonitorReportsOnlyDistinctContent(t *testing.T) {
	acc := &fakeAccessor{seq: []Content{
		{Type: ContentText, Data: []byte("a")},
		{Type: ContentText, Data: []byte("a")},
		{Type: ContentText, Data: []byte("b")},
	}}
	m := NewMonitor(acc, 5*time.Millisecond)

	var mu sync.Mutex
	var seen []string
	m.Handle = func(c Content) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, string(c.Data))
	}

	m.Start()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) >= 2
	}, time.Second, 5*time.Millisecond)
	m.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"a", "b"}, seen)
}

func TestMonitorStopIsIdempotentAndWaits(t *testing.T) {
	acc := &fakeAccessor{seq: []Content{{Type: ContentText, Data: []byte("x")}}}
	m := NewMonitor(acc, 5*time.Millisecond)
	m.Start()
	m.Stop()
	m.Stop()
}
