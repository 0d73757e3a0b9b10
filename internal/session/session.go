package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/page"
	"github.com/dgallion1/docdeck/internal/present"
	"golang.org/x/net/html"
)

var (
	// ErrNotFound is returned for unknown or expired session IDs.
	ErrNotFound = errors.New("session not found")
	// ErrFull is returned when the store is at capacity.
	ErrFull = errors.New("session store is full")
)

// Session is one live presentation. Transition events for a session are
// handled one at a time.
type Session struct {
	mu sync.Mutex

	ID       string
	Title    string
	Filename string

	CreatedAt time.Time
	UpdatedAt time.Time

	state  *present.State
	splits int
}

// New creates a session around a freshly classified slide sequence.
func New(title, filename string, slides []deck.Slide) *Session {
	now := time.Now()
	return &Session{
		ID:        NewID(),
		Title:     title,
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		state:     present.New(slides),
	}
}

// Handle runs one transition event through the feedback loop. Concurrent
// callers are serialized so each event runs to completion before the next.
func (s *Session) Handle(ev present.TransitionEvent) (present.Outcome, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.state.Handle(ev, nil)
	if err != nil {
		return out, "", err
	}
	s.UpdatedAt = time.Now()
	if out.Split {
		s.splits++
	}
	return out, s.state.HTML(), nil
}

// Fit pre-splits overflowing slides with a measurer instead of a browser.
func (s *Session) Fit(m present.Measurer, viewport float64, maxSplits int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.state.Fit(m, viewport, maxSplits)
	s.splits += n
	s.UpdatedAt = time.Now()
	return n, err
}

// HTML returns the assembled slide markup.
func (s *Session) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.HTML()
}

// Page returns a reveal.js document for the current slides.
func (s *Session) Page(opts page.Options) *html.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts.Title == "" {
		opts.Title = s.Title
	}
	return page.Build(s.state.Container, opts)
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID       string              `json:"deck_id"`
	Title    string              `json:"title"`
	Filename string              `json:"filename"`
	Splits   int                 `json:"splits"`
	Slides   []present.SlideInfo `json:"slides"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:       s.ID,
		Title:    s.Title,
		Filename: s.Filename,
		Splits:   s.splits,
		Slides:   present.Describe(s.state.Deck.Slides),
	}
}

// Len returns the current slide count.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Deck.Len()
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
}

// NewStore creates a store. max <= 0 means unbounded.
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      max,
	}
}

// Put registers a session.
func (s *Store) Put(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[sess.ID]; !exists && s.max > 0 && len(s.sessions) >= s.max {
		return fmt.Errorf("%w (%d)", ErrFull, s.max)
	}
	s.sessions[sess.ID] = sess
	return nil
}

// Get returns a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Delete removes a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes expired sessions and returns how many were dropped.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	dropped := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed()) > s.ttl {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run calls Cleanup every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}
