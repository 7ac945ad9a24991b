// Package unlock gates the resume download behind a typed passphrase.
package unlock

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRevealDelay is how long the success indicator stays up.
const DefaultRevealDelay = 5 * time.Second

// ErrThrottled is returned when input arrives faster than the guard allows.
var ErrThrottled = errors.New("too many unlock attempts")

// State is the gate state.
type State int

const (
	Idle State = iota
	Revealed
)

func (s State) String() string {
	if s == Revealed {
		return "revealed"
	}
	return "idle"
}

// Gate is a two-state machine. Input equal to the secret moves it from Idle
// to Revealed, fires onReveal once and schedules the return to Idle after
// the reveal delay. Matching input while Revealed does nothing: the reveal
// callback does not fire again and the delay is not extended.
type Gate struct {
	secret   []byte
	delay    time.Duration
	onReveal func()

	mu     sync.Mutex
	state  State
	input  string
	seq    uint64
	timer  *time.Timer
	closed bool
}

// NewGate returns an Idle gate.
func NewGate(secret string, delay time.Duration, onReveal func()) *Gate {
	if delay <= 0 {
		delay = DefaultRevealDelay
	}
	return &Gate{secret: []byte(secret), delay: delay, onReveal: onReveal}
}

// OnInput handles the full current value of the input after a keystroke. It
// reports whether this keystroke revealed the resource.
func (g *Gate) OnInput(value string) bool {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return false
	}
	g.input = value
	if g.state == Revealed || len(g.secret) == 0 ||
		subtle.ConstantTimeCompare([]byte(value), g.secret) != 1 {
		g.mu.Unlock()
		return false
	}

	g.state = Revealed
	g.seq++
	seq := g.seq
	g.timer = time.AfterFunc(g.delay, func() { g.revert(seq) })
	g.mu.Unlock()

	if g.onReveal != nil {
		g.onReveal()
	}
	return true
}

func (g *Gate) revert(seq uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// A stale timer, or one that fired while Close was running, is ignored.
	if g.closed || seq != g.seq {
		return
	}
	g.state = Idle
	g.timer = nil
}

// State returns the current state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Input returns the last value seen.
func (g *Gate) Input() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.input
}

// Close cancels a pending return to Idle. After Close the gate ignores
// input and no timer touches its state.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	g.seq++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// Guard rate limits input to a gate.
type Guard struct {
	gate    *Gate
	limiter *rate.Limiter
}

// NewGuard allows r attempts per second with the given burst.
func NewGuard(g *Gate, r rate.Limit, burst int) *Guard {
	return &Guard{gate: g, limiter: rate.NewLimiter(r, burst)}
}

// OnInput forwards value to the gate unless the attempt is throttled.
func (gd *Guard) OnInput(value string) (bool, error) {
	if !gd.limiter.Allow() {
		return false, ErrThrottled
	}
	return gd.gate.OnInput(value), nil
}

// Gate returns the guarded gate.
func (gd *Guard) Gate() *Gate { return gd.gate }
