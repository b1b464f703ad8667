package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minaorangina/patience"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrUnknownSessionID = errors.New("unknown session ID")
	ErrStoreFull        = errors.New("too many sessions")
	ErrNilSession       = errors.New("nil session")
)

type SessionStore interface {
	Add(s *patience.Session) (*Entry, error)
	Find(id string) (*Entry, error)
	Remove(id string) bool
	Len() int
}

// Entry is a stored session. Sessions are not safe for concurrent use, so
// every access goes through Do.
type Entry struct {
	ID string

	mu      sync.Mutex
	session *patience.Session
}

// Do runs fn with the session locked
func (e *Entry) Do(fn func(s *patience.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fn(e.session)
}

// Snapshot copies the session under the lock
func (e *Entry) Snapshot() patience.Snapshot {
	var snap patience.Snapshot
	e.Do(func(s *patience.Session) error {
		snap = s.Snapshot()
		return nil
	})
	return snap
}

// InMemorySessionStore maps session id to session
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Entry
	limit    int
}

// NewInMemorySessionStore holds up to limit sessions; 0 means no limit
func NewInMemorySessionStore(limit int) *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: map[string]*Entry{},
		limit:    limit,
	}
}

func NewID() string {
	return uuid.NewV4().String()
}

func (st *InMemorySessionStore) Add(s *patience.Session) (*Entry, error) {
	if s == nil {
		return nil, ErrNilSession
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.limit > 0 && len(st.sessions) >= st.limit {
		return nil, fmt.Errorf("%w: limit is %d", ErrStoreFull, st.limit)
	}

	e := &Entry{ID: NewID(), session: s}
	st.sessions[e.ID] = e
	return e, nil
}

func (st *InMemorySessionStore) Find(id string) (*Entry, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	e, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownSessionID, id)
	}
	return e, nil
}

// Remove reports whether the session was there
func (st *InMemorySessionStore) Remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

func (st *InMemorySessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.sessions)
}
