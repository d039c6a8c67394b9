package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without running the call while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// Threshold is the number of consecutive failures that opens the breaker.
	Threshold int
	// Cooldown is how long the breaker stays open before letting one probe through.
	Cooldown time.Duration
	// Ignore reports errors that say nothing about the dependency's health.
	Ignore func(err error) bool
	// OnStateChange is called whenever the state changes, under no lock.
	OnStateChange func(name string, from, to State)
	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Breaker implements the circuit breaker pattern
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a new circuit breaker with the given settings
func New(name string, settings Settings) *Breaker {
	if settings.Threshold <= 0 {
		settings.Threshold = 5
	}
	if settings.Cooldown <= 0 {
		settings.Cooldown = 30 * time.Second
	}
	if settings.Ignore == nil {
		settings.Ignore = func(error) bool { return false }
	}
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &Breaker{name: name, settings: settings}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state, moving open to half-open once the cooldown
// has passed.
func (b *Breaker) State() State {
	b.mu.Lock()
	from, to := b.refreshLocked()
	b.mu.Unlock()
	b.notify(from, to)
	return to
}

// Do runs fn unless the breaker is open. While half-open only one call at a
// time is let through; its outcome closes or reopens the breaker.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	from, state := b.refreshLocked()
	switch {
	case state == StateOpen, state == StateHalfOpen && b.probing:
		b.mu.Unlock()
		b.notify(from, state)
		return ErrCircuitOpen
	case state == StateHalfOpen:
		b.probing = true
	}
	b.mu.Unlock()
	b.notify(from, state)

	err := fn()

	b.mu.Lock()
	from = b.state
	switch {
	case err == nil || b.settings.Ignore(err):
		b.failures = 0
		b.state = StateClosed
	case b.state == StateHalfOpen:
		b.trip()
	default:
		b.failures++
		if b.failures >= b.settings.Threshold {
			b.trip()
		}
	}
	b.probing = false
	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
	return err
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.openedAt = b.settings.Now()
	b.failures = 0
}

func (b *Breaker) refreshLocked() (from, to State) {
	from = b.state
	if b.state == StateOpen && b.settings.Now().Sub(b.openedAt) >= b.settings.Cooldown {
		b.state = StateHalfOpen
	}
	return from, b.state
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}
