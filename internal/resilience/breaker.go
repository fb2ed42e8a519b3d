// Package resilience implements a small circuit breaker used to guard the
// two outbound TCP paths the core owns: the HMI bus connection and the
// SyncP deferred sender. Both are best-effort side channels — the breaker
// lets them fail fast instead of stalling a dispatcher-thread caller.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Execute while the breaker is open.
var ErrOpen = errors.New("resilience: circuit breaker open")

// ErrHalfOpenLimit is returned when the half-open trial quota is exhausted.
var ErrHalfOpenLimit = errors.New("resilience: half-open trial limit reached")

// State is one of Closed, Open, HalfOpen.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Counts tracks rolling statistics used by Settings.ReadyToTrip.
type Counts struct {
	Requests             uint32
	ConsecutiveFailures  uint32
	ConsecutiveSuccesses uint32
}

// Settings configures a Breaker.
type Settings struct {
	// HalfOpenTrials bounds concurrent probe requests while HalfOpen.
	HalfOpenTrials uint32
	// ResetAfter is how long a Closed breaker waits before zeroing Counts.
	ResetAfter time.Duration
	// CooldownAfter is how long an Open breaker waits before probing again.
	CooldownAfter time.Duration
	// ReadyToTrip decides, from Counts, whether a Closed breaker should open.
	ReadyToTrip func(Counts) bool
	// OnTrip is invoked whenever the state changes, for logging/metrics.
	OnTrip func(name string, from, to State)
}

func (s *Settings) fillDefaults() {
	if s.HalfOpenTrials == 0 {
		s.HalfOpenTrials = 1
	}
	if s.ResetAfter == 0 {
		s.ResetAfter = 60 * time.Second
	}
	if s.CooldownAfter == 0 {
		s.CooldownAfter = 30 * time.Second
	}
	if s.ReadyToTrip == nil {
		s.ReadyToTrip = func(c Counts) bool { return c.ConsecutiveFailures >= 5 }
	}
}

// Breaker is a stateful gate around a flaky downstream call.
type Breaker struct {
	name     string
	settings Settings

	mu      sync.Mutex
	state   State
	counts  Counts
	changed time.Time
}

// New constructs a Breaker; zero-valued Settings fields take safe defaults.
func New(name string, settings Settings) *Breaker {
	settings.fillDefaults()
	return &Breaker{
		name:     name,
		settings: settings,
		state:    Closed,
		changed:  time.Now(),
	}
}

// State reports the current state, applying any pending time-based transition.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(time.Now())
	return b.state
}

// Execute runs fn if the breaker currently admits requests.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := fn()
	b.report(err == nil)
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.advance(now)

	switch b.state {
	case Open:
		return ErrOpen
	case HalfOpen:
		if b.counts.Requests >= b.settings.HalfOpenTrials {
			return ErrHalfOpenLimit
		}
	}
	b.counts.Requests++
	return nil
}

func (b *Breaker) report(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if success {
		b.counts.ConsecutiveSuccesses++
		b.counts.ConsecutiveFailures = 0
		if b.state == HalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.HalfOpenTrials {
			b.transition(Closed, now)
		}
		return
	}

	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccesses = 0
	switch b.state {
	case Closed:
		if b.settings.ReadyToTrip(b.counts) {
			b.transition(Open, now)
		}
	case HalfOpen:
		b.transition(Open, now)
	}
}

// advance applies Closed->reset-counts and Open->HalfOpen time transitions.
// Caller must hold b.mu.
func (b *Breaker) advance(now time.Time) {
	switch b.state {
	case Closed:
		if now.Sub(b.changed) >= b.settings.ResetAfter {
			b.counts = Counts{}
			b.changed = now
		}
	case Open:
		if now.Sub(b.changed) >= b.settings.CooldownAfter {
			b.transition(HalfOpen, now)
		}
	}
}

// transition changes state. Caller must hold b.mu.
func (b *Breaker) transition(to State, now time.Time) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.counts = Counts{}
	b.changed = now
	if b.settings.OnTrip != nil {
		b.settings.OnTrip(b.name, from, to)
	}
}
