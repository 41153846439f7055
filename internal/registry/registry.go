// Package registry maps a session_id (the 32-bit handle carried on
// the IPC wire) to the server-side session state for that TSF client
// connection.
package registry

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Session is the minimal surface the registry needs from a session;
// internal/inputsession.Session satisfies it.
type Session interface {
	ID() string
}

// Registry is the server-side session_id -> Session map. One Registry
// exists per suyand process; every connected TSF client gets its own
// session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uint32]Session
	ids      map[uint32]string
	next     atomic.Uint32
}

// New creates an empty Registry. Handles start at 1 so 0 can signal
// "no session" on the wire.
func New() *Registry {
	r := &Registry{
		sessions: make(map[uint32]Session),
		ids:      make(map[uint32]string),
	}
	r.next.Store(1)
	return r
}

// Register assigns a new session_id to sess and returns it.
func (r *Registry) Register(sess Session) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := r.next.Add(1) - 1
	r.sessions[handle] = sess
	r.ids[handle] = uuid.NewString()
	return handle
}

// Get returns the session for handle, or ok=false if it doesn't exist:
// already ended, or never registered (a stale or unknown session id).
func (r *Registry) Get(handle uint32) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[handle]
	return s, ok
}

// Unregister removes a session, returning an error if it was not present.
func (r *Registry) Unregister(handle uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[handle]; !ok {
		return fmt.Errorf("unregister: unknown session %d", handle)
	}
	delete(r.sessions, handle)
	delete(r.ids, handle)
	return nil
}

// Count returns the number of currently registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Each calls fn for every registered session. fn must not call back
// into the registry.
func (r *Registry) Each(fn func(handle uint32, sess Session)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for handle, sess := range r.sessions {
		fn(handle, sess)
	}
}
