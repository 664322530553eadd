package resilience

import (
	"sort"
	"sync"
)

// Registry hands out one circuit breaker per name and keeps them for the
// lifetime of the process, so concurrent callers share state.
type Registry struct {
	cfg Config

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config) *Registry {
	return &Registry{
		cfg:      cfg,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Breaker returns the breaker for name, creating it on first use.
func (r *Registry) Breaker(name string) *CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	cb, ok := r.breakers[name]
	if !ok {
		cb = NewCircuitBreaker(name, r.cfg.Breaker)
		r.breakers[name] = cb
	}
	return cb
}

// Policy returns the full strategy set for name.
func (r *Registry) Policy(name string) Policy {
	return Policy{
		TimeLimiter: TimeLimiter{Name: name, Timeout: r.cfg.Timeout},
		Breaker:     r.Breaker(name),
		Retry:       Retry{MaxAttempts: r.cfg.MaxAttempts, Wait: r.cfg.RetryWait},
	}
}

// States returns the current state of every known breaker.
func (r *Registry) States() map[string]State {
	r.mu.Lock()
	breakers := make([]*CircuitBreaker, 0, len(r.breakers))
	for _, cb := range r.breakers {
		breakers = append(breakers, cb)
	}
	r.mu.Unlock()

	states := make(map[string]State, len(breakers))
	for _, cb := range breakers {
		states[cb.Name()] = cb.State()
	}
	return states
}

// Names returns the registered breaker names in ascending order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.breakers))
	for name := range r.breakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
