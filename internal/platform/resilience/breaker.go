package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/apperrors"
)

// State is a circuit breaker state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// StateChangeFunc is notified after every transition. It runs without the
// breaker lock held.
type StateChangeFunc func(name string, from, to State)

// BreakerConfig configures a count-based sliding-window breaker.
type BreakerConfig struct {
	WindowSize           int
	MinimumCalls         int
	FailureRateThreshold float64 // percent, 0-100
	OpenWait             time.Duration
	HalfOpenMaxCalls     int
	Clock                func() time.Time
	OnStateChange        StateChangeFunc
}

// DefaultBreakerConfig returns the production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		WindowSize:           10,
		MinimumCalls:         5,
		FailureRateThreshold: 50,
		OpenWait:             10 * time.Second,
		HalfOpenMaxCalls:     3,
	}
}

func (c BreakerConfig) normalized() BreakerConfig {
	d := DefaultBreakerConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	if c.MinimumCalls <= 0 {
		c.MinimumCalls = d.MinimumCalls
	}
	if c.MinimumCalls > c.WindowSize {
		c.MinimumCalls = c.WindowSize
	}
	if c.FailureRateThreshold <= 0 || c.FailureRateThreshold > 100 {
		c.FailureRateThreshold = d.FailureRateThreshold
	}
	if c.OpenWait <= 0 {
		c.OpenWait = d.OpenWait
	}
	if c.HalfOpenMaxCalls <= 0 {
		c.HalfOpenMaxCalls = d.HalfOpenMaxCalls
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c
}

// CircuitBreaker tracks the outcome of the last WindowSize calls and opens
// once the failure rate exceeds the threshold. After OpenWait it lets
// HalfOpenMaxCalls trial calls through: all of them succeeding closes the
// circuit, any failure reopens it.
type CircuitBreaker struct {
	name string
	cfg  BreakerConfig

	mu       sync.Mutex
	state    State
	openedAt time.Time
	// generation changes on every transition so outcomes of calls admitted
	// under an older state are ignored.
	generation uint64

	window   []bool // true = failure
	next     int
	count    int
	failures int

	trialsAdmitted  int
	trialsSucceeded int
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(name string, cfg BreakerConfig) *CircuitBreaker {
	cfg = cfg.normalized()
	return &CircuitBreaker{
		name:   name,
		cfg:    cfg,
		state:  StateClosed,
		window: make([]bool, cfg.WindowSize),
	}
}

// Name returns the name the breaker guards.
func (cb *CircuitBreaker) Name() string { return cb.name }

// State returns the current state, moving OPEN to HALF_OPEN if the wait has elapsed.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	from, to, changed := cb.maybeHalfOpen()
	state := cb.state
	cb.mu.Unlock()
	if changed {
		cb.notify(from, to)
	}
	return state
}

// Allow asks permission for one call. The returned ticket must be passed to Record.
func (cb *CircuitBreaker) Allow() (uint64, error) {
	cb.mu.Lock()
	from, to, changed := cb.maybeHalfOpen()
	var err error
	switch cb.state {
	case StateOpen:
		err = apperrors.NewProviderUnavailableError(cb.name, "circuit open", nil)
	case StateHalfOpen:
		if cb.trialsAdmitted >= cb.cfg.HalfOpenMaxCalls {
			err = apperrors.NewProviderUnavailableError(cb.name, "circuit half-open, trial calls exhausted", nil)
		} else {
			cb.trialsAdmitted++
		}
	}
	ticket := cb.generation
	cb.mu.Unlock()
	if changed {
		cb.notify(from, to)
	}
	return ticket, err
}

// Record reports the outcome of a call admitted with ticket.
func (cb *CircuitBreaker) Record(ticket uint64, success bool) {
	cb.mu.Lock()
	if ticket != cb.generation {
		cb.mu.Unlock()
		return
	}
	from := cb.state
	var changed bool
	switch cb.state {
	case StateClosed:
		cb.observe(!success)
		if cb.count >= cb.cfg.MinimumCalls && cb.failureRate() > cb.cfg.FailureRateThreshold {
			cb.transition(StateOpen)
			changed = true
		}
	case StateHalfOpen:
		if !success {
			cb.transition(StateOpen)
			changed = true
		} else {
			cb.trialsSucceeded++
			if cb.trialsSucceeded >= cb.cfg.HalfOpenMaxCalls {
				cb.transition(StateClosed)
				changed = true
			}
		}
	}
	to := cb.state
	cb.mu.Unlock()
	if changed {
		cb.notify(from, to)
	}
}

// Guarded wraps call with the breaker. Rejected calls never reach call.
func Guarded[T any](cb *CircuitBreaker, call Call[T]) Call[T] {
	return func(ctx context.Context) (T, error) {
		ticket, err := cb.Allow()
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := call(ctx)
		cb.Record(ticket, err == nil)
		return v, err
	}
}

func (cb *CircuitBreaker) observe(failure bool) {
	if cb.count == len(cb.window) {
		if cb.window[cb.next] {
			cb.failures--
		}
	} else {
		cb.count++
	}
	cb.window[cb.next] = failure
	if failure {
		cb.failures++
	}
	cb.next = (cb.next + 1) % len(cb.window)
}

func (cb *CircuitBreaker) failureRate() float64 {
	if cb.count == 0 {
		return 0
	}
	return float64(cb.failures) * 100 / float64(cb.count)
}

// maybeHalfOpen must be called with mu held.
func (cb *CircuitBreaker) maybeHalfOpen() (State, State, bool) {
	if cb.state != StateOpen || cb.cfg.Clock().Sub(cb.openedAt) < cb.cfg.OpenWait {
		return cb.state, cb.state, false
	}
	cb.transition(StateHalfOpen)
	return StateOpen, StateHalfOpen, true
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to State) {
	cb.state = to
	cb.generation++
	cb.trialsAdmitted = 0
	cb.trialsSucceeded = 0
	switch to {
	case StateOpen:
		cb.openedAt = cb.cfg.Clock()
	case StateClosed:
		cb.resetWindow()
	}
}

func (cb *CircuitBreaker) resetWindow() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.next, cb.count, cb.failures = 0, 0, 0
}

func (cb *CircuitBreaker) notify(from, to State) {
	if cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(cb.name, from, to)
	}
}
