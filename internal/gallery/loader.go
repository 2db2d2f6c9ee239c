package gallery

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// DefaultPageSize is the number of images appended per load.
	DefaultPageSize = 12
	// DefaultLoadDelay mirrors the fetch latency the gallery was tuned for.
	DefaultLoadDelay = 800 * time.Millisecond
)

// State is the loader lifecycle state.
type State int

const (
	Idle State = iota
	Loading
	Exhausted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of a loader's view state.
type Snapshot struct {
	Visible  []Image
	Page     int
	State    State
	Sentinel int
}

// HasMore reports whether further loads may still append images.
func (s Snapshot) HasMore() bool { return s.State != Exhausted }

// Option configures a Loader.
type Option func(*Loader)

// WithPageSize overrides the page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// WithDelay sets the latency between a trigger and the page being appended.
func WithDelay(d time.Duration) Option {
	return func(l *Loader) {
		if d >= 0 {
			l.delay = d
		}
	}
}

// WithClock sets the clock used to schedule load completion.
func WithClock(c clock.Clock) Option {
	return func(l *Loader) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithOnLoad registers a hook invoked after every completed load with the
// number of appended images and the resulting state.
func WithOnLoad(fn func(added int, state State)) Option {
	return func(l *Loader) { l.onLoad = fn }
}

// Loader presents a growing prefix of a catalog. A load is triggered by the
// sentinel (the last visible image) being revealed and completes after the
// configured delay. At most one load is in flight at a time.
type Loader struct {
	mu       sync.Mutex
	catalog  *Catalog
	pageSize int
	delay    time.Duration
	clock    clock.Clock
	onLoad   func(int, State)

	visible  []Image
	page     int
	state    State
	closed   bool
	pending  *clock.Timer
	done     chan struct{}
	observer *Observer
}

// NewLoader mounts a gallery view with the first page visible.
func NewLoader(catalog *Catalog, opts ...Option) *Loader {
	if catalog == nil {
		catalog = CatalogFrom(nil)
	}
	l := &Loader{
		catalog:  catalog,
		pageSize: DefaultPageSize,
		delay:    DefaultLoadDelay,
		clock:    clock.New(),
		page:     1,
		state:    Idle,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.visible = catalog.Slice(0, l.pageSize)
	l.observer = NewObserver(func(int) bool { return l.LoadMore() })
	l.attachSentinel()
	return l
}

// LoadMore moves Idle to Loading and schedules the next page. It is a no-op
// returning false while a load is in flight, after exhaustion, or once the
// loader is closed.
func (l *Loader) LoadMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.state != Idle {
		return false
	}
	l.state = Loading
	l.done = make(chan struct{})
	l.pending = l.clock.AfterFunc(l.delay, l.complete)
	return true
}

// Reveal routes a visibility event for image id through the sentinel
// observer. It returns true when the event started a load.
func (l *Loader) Reveal(id int) bool {
	return l.observer.Reveal(id)
}

func (l *Loader) complete() {
	l.mu.Lock()
	if l.closed || l.state != Loading {
		l.mu.Unlock()
		return
	}
	start := l.page * l.pageSize
	next := l.catalog.Slice(start, start+l.pageSize)
	if len(next) == 0 {
		l.state = Exhausted
	} else {
		l.visible = append(l.visible, next...)
		l.page++
		l.state = Idle
	}
	state := l.state
	l.pending = nil
	done := l.done
	l.done = nil
	l.attachSentinelLocked()
	onLoad := l.onLoad
	l.mu.Unlock()

	if onLoad != nil {
		onLoad(len(next), state)
	}
	if done != nil {
		close(done)
	}
}

// Wait blocks until no load is in flight or ctx is done.
func (l *Loader) Wait(ctx context.Context) error {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current view state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	visible := make([]Image, len(l.visible))
	for i, img := range l.visible {
		visible[i] = cloneImage(img)
	}
	sentinel, _ := l.observer.Target()
	return Snapshot{
		Visible:  visible,
		Page:     l.page,
		State:    l.state,
		Sentinel: sentinel,
	}
}

// State returns the current lifecycle state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// PageSize returns the configured page size.
func (l *Loader) PageSize() int { return l.pageSize }

// Close tears the view down: a pending load is cancelled and later triggers
// are ignored.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
	done := l.done
	l.done = nil
	l.mu.Unlock()
	l.observer.Disconnect()
	if done != nil {
		close(done)
	}
}

func (l *Loader) attachSentinel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attachSentinelLocked()
}

func (l *Loader) attachSentinelLocked() {
	if l.state == Exhausted || len(l.visible) == 0 {
		l.observer.Disconnect()
		return
	}
	l.observer.Observe(l.visible[len(l.visible)-1].ID)
}
