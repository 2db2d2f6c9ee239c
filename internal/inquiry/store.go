package inquiry

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultSessionTTL bounds how long an idle conversation is retained.
const DefaultSessionTTL = 2 * time.Hour

// Store keeps one widget per visitor session.
type Store struct {
	mu    sync.Mutex
	newFn func() *Widget
	ttl   time.Duration
	clock clock.Clock
	items map[string]*storedWidget
}

type storedWidget struct {
	widget   *Widget
	lastSeen time.Time
}

// NewStore builds a store creating widgets with newFn on first use.
func NewStore(newFn func() *Widget, ttl time.Duration, clk clock.Clock) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Store{newFn: newFn, ttl: ttl, clock: clk, items: map[string]*storedWidget{}}
}

// Get returns the widget for sessionID, creating it when absent.
func (s *Store) Get(sessionID string) *Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	if sw, ok := s.items[sessionID]; ok {
		sw.lastSeen = now
		return sw.widget
	}
	w := s.newFn()
	s.items[sessionID] = &storedWidget{widget: w, lastSeen: now}
	return w
}

// Peek returns the widget for sessionID without creating one.
func (s *Store) Peek(sessionID string) (*Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sw, ok := s.items[sessionID]
	if !ok {
		return nil, false
	}
	return sw.widget, true
}

// Delete closes and forgets the widget for sessionID.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	sw, ok := s.items[sessionID]
	delete(s.items, sessionID)
	s.mu.Unlock()
	if ok {
		sw.widget.Close()
	}
}

// Sweep closes widgets idle longer than the TTL.
func (s *Store) Sweep() int {
	cutoff := s.clock.Now().Add(-s.ttl)
	var stale []*Widget
	s.mu.Lock()
	for id, sw := range s.items {
		if sw.lastSeen.Before(cutoff) {
			stale = append(stale, sw.widget)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()
	for _, w := range stale {
		w.Close()
	}
	return len(stale)
}

// Len reports the number of live conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close closes every conversation.
func (s *Store) Close() {
	s.mu.Lock()
	items := s.items
	s.items = map[string]*storedWidget{}
	s.mu.Unlock()
	for _, sw := range items {
		sw.widget.Close()
	}
}
