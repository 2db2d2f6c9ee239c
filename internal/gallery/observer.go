package gallery

import "sync"

// Observer watches a single sentinel element and notifies once when it is
// revealed. Attaching a new element releases the previous one.
type Observer struct {
	mu       sync.Mutex
	target   int
	attached bool
	fired    bool
	notify   func(id int) bool
}

// NewObserver returns an observer that calls notify on reveal.
func NewObserver(notify func(id int) bool) *Observer {
	return &Observer{notify: notify}
}

// Observe releases any current element and attaches to id.
func (o *Observer) Observe(id int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attached && o.target == id {
		return
	}
	o.target = id
	o.attached = true
	o.fired = false
}

// Disconnect releases the watched element.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	o.attached = false
	o.fired = false
	o.target = 0
	o.mu.Unlock()
}

// Target returns the watched element id, if any.
func (o *Observer) Target() (int, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.target, o.attached
}

// Reveal reports that element id entered the viewport. The callback runs at
// most once per attached element and never for an element that is not
// being watched. It returns the callback's result.
func (o *Observer) Reveal(id int) bool {
	o.mu.Lock()
	if !o.attached || o.target != id || o.fired {
		o.mu.Unlock()
		return false
	}
	o.fired = true
	notify := o.notify
	o.mu.Unlock()
	if notify == nil {
		return false
	}
	return notify(id)
}
