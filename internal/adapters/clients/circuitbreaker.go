package clients

import (
	"sync"
	"time"
)

// State is a circuit breaker state.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen blocks requests until the cool-down elapses.
	StateOpen

	// StateHalfOpen lets a bounded number of probes through.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures a CircuitBreaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures that opens the circuit.
	MaxFailures int

	// Timeout is the open-state cool-down before probing.
	Timeout time.Duration

	// HalfOpenLimit bounds concurrent probes and is the number of
	// consecutive probe successes that closes the circuit.
	HalfOpenLimit int
}

// CircuitBreaker stops calling an upstream after repeated failures.
//
//	closed    --MaxFailures failures-->  open
//	open      --Timeout elapsed------->  half-open
//	half-open --HalfOpenLimit ok------>  closed
//	half-open --any failure----------->  open
type CircuitBreaker struct {
	mu          sync.Mutex
	cfg         CircuitBreakerConfig
	state       State
	failures    int
	successes   int
	inFlight    int
	lastFailure time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures < 1 {
		cfg.MaxFailures = 1
	}

	if cfg.HalfOpenLimit < 1 {
		cfg.HalfOpenLimit = 1
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers fn to run after every transition.
// fn runs on the caller's goroutine once the breaker's lock is released.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. An expired open circuit
// moves to half-open and admits the caller as the first probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var (
		allowed bool
		notify  func()
	)

	switch cb.state {
	case StateClosed:
		allowed = true
	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			notify = cb.transitionTo(StateHalfOpen)
			cb.inFlight = 1
			allowed = true
		}
	case StateHalfOpen:
		if cb.inFlight < cb.cfg.HalfOpenLimit {
			cb.inFlight++
			allowed = true
		}
	}

	cb.mu.Unlock()
	run(notify)

	return allowed
}

// RecordSuccess records a completed request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var notify func()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			notify = cb.transitionTo(StateClosed)
		}
	}

	cb.mu.Unlock()
	run(notify)
}

// RecordFailure records a failed request. A failing probe reopens at once.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var notify func()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			notify = cb.transitionTo(StateOpen)
		}
	case StateHalfOpen:
		cb.inFlight = max(cb.inFlight-1, 0)
		notify = cb.transitionTo(StateOpen)
	}

	cb.mu.Unlock()
	run(notify)
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// RetryAt returns when an open circuit will admit a probe, or the zero time otherwise.
func (cb *CircuitBreaker) RetryAt() time.Time {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return time.Time{}
	}

	return cb.lastFailure.Add(cb.cfg.Timeout)
}

// transitionTo must be called with mu held. It returns the callback to run after unlocking.
func (cb *CircuitBreaker) transitionTo(next State) func() {
	if cb.state == next {
		return nil
	}

	prev := cb.state
	cb.state = next
	cb.failures = 0
	cb.successes = 0

	if next != StateHalfOpen {
		cb.inFlight = 0
	}

	fn := cb.onStateChange
	if fn == nil {
		return nil
	}

	return func() { fn(prev, next) }
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}
