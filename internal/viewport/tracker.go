// Package viewport tracks the browser viewport size reported by one
// component instance.
package viewport

import "sync"

// Size is a viewport size in CSS pixels.
type Size struct {
	Width  int `json:"width" form:"w"`
	Height int `json:"height" form:"h"`
}

// Tracker owns the current size for a single component and notifies its
// subscribers on every update. Each component creates its own Tracker and
// closes it on teardown.
type Tracker struct {
	mu     sync.Mutex
	size   Size
	subs   map[uint64]func(Size)
	nextID uint64
	closed bool

	// dispatch serializes notifications so the last update is also the last
	// one subscribers see.
	dispatch sync.Mutex
}

// NewTracker returns a tracker starting at the given size.
func NewTracker(initial Size) *Tracker {
	return &Tracker{
		size: initial,
		subs: make(map[uint64]func(Size)),
	}
}

// Size returns the current size.
func (t *Tracker) Size() Size {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Update records a resize event and notifies subscribers. Subscribers receive
// the size current at the time they run, so intermediate sizes from a burst
// of updates may never be observed. Updates after Close are ignored.
func (t *Tracker) Update(s Size) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.size = s
	t.mu.Unlock()

	t.dispatch.Lock()
	defer t.dispatch.Unlock()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	current := t.size
	fns := make([]func(Size), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(current)
	}
}

// Subscribe registers fn for resize notifications. The returned function
// removes the subscription and may be called more than once.
func (t *Tracker) Subscribe(fn func(Size)) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return func() {}
	}

	id := t.nextID
	t.nextID++
	t.subs[id] = fn

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// Subscribers returns the number of active subscriptions.
func (t *Tracker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Close drops every subscription. Once Close returns no subscriber will be
// notified again.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.closed = true
	clear(t.subs)
	t.mu.Unlock()

	// Wait out a notification that is already running.
	t.dispatch.Lock()
	t.dispatch.Unlock() //nolint:staticcheck
}
