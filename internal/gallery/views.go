package gallery

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/oklog/ulid/v2"
)

// DefaultViewTTL bounds how long an untouched mounted view is kept.
const DefaultViewTTL = 30 * time.Minute

// Views tracks mounted gallery loaders by view id. Each page render mounts a
// fresh loader; idle views are evicted and closed.
type Views struct {
	mu      sync.Mutex
	catalog *Catalog
	opts    []Option
	ttl     time.Duration
	clock   clock.Clock
	items   map[string]*mountedView
}

type mountedView struct {
	loader   *Loader
	lastSeen time.Time
}

// NewViews builds a registry serving loaders over catalog.
func NewViews(catalog *Catalog, ttl time.Duration, clk clock.Clock, opts ...Option) *Views {
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Views{
		catalog: catalog,
		opts:    append([]Option{WithClock(clk)}, opts...),
		ttl:     ttl,
		clock:   clk,
		items:   map[string]*mountedView{},
	}
}

// Catalog returns the shared catalog.
func (v *Views) Catalog() *Catalog { return v.catalog }

// Mount creates a new view and returns its id alongside the loader.
func (v *Views) Mount() (string, *Loader) {
	now := v.clock.Now()
	id := ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
	loader := NewLoader(v.catalog, v.opts...)
	v.mu.Lock()
	v.items[id] = &mountedView{loader: loader, lastSeen: now}
	v.mu.Unlock()
	return id, loader
}

// Get returns a mounted loader and refreshes its idle timer.
func (v *Views) Get(id string) (*Loader, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	mv, ok := v.items[id]
	if !ok {
		return nil, false
	}
	mv.lastSeen = v.clock.Now()
	return mv.loader, true
}

// Unmount removes and closes a view. It reports whether the view existed.
func (v *Views) Unmount(id string) bool {
	v.mu.Lock()
	mv, ok := v.items[id]
	delete(v.items, id)
	v.mu.Unlock()
	if ok {
		mv.loader.Close()
	}
	return ok
}

// Sweep closes views idle longer than the TTL and returns how many were removed.
func (v *Views) Sweep() int {
	cutoff := v.clock.Now().Add(-v.ttl)
	var stale []*Loader
	v.mu.Lock()
	for id, mv := range v.items {
		if mv.lastSeen.Before(cutoff) {
			stale = append(stale, mv.loader)
			delete(v.items, id)
		}
	}
	v.mu.Unlock()
	for _, l := range stale {
		l.Close()
	}
	return len(stale)
}

// Len reports the number of mounted views.
func (v *Views) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items)
}

// Close unmounts every view.
func (v *Views) Close() {
	v.mu.Lock()
	items := v.items
	v.items = map[string]*mountedView{}
	v.mu.Unlock()
	for _, mv := range items {
		mv.loader.Close()
	}
}
