package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDuplicateChecker is returned when two checkers share a name.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// DefaultCheckTimeout bounds a single checker when the caller's context has no deadline.
const DefaultCheckTimeout = 2 * time.Second

// HealthChecker is implemented by adapters that can report whether they are usable.
// The quote store pings its database; the upstream quote source reports its circuit breaker.
type HealthChecker interface {
	// Name identifies the component in readiness responses (e.g. "quote-store").
	Name() string

	// Check returns nil when the component is healthy.
	Check(ctx context.Context) error
}

// HealthRegistry aggregates the checkers wired at startup.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is "healthy" or "unhealthy".
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult is the readiness verdict plus one entry per checker.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is one checker's outcome. Message carries the error text.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RegistryOption customizes a DefaultHealthRegistry.
type RegistryOption func(*DefaultHealthRegistry)

// WithCheckTimeout replaces DefaultCheckTimeout. Zero disables the bound.
func WithCheckTimeout(d time.Duration) RegistryOption {
	return func(r *DefaultHealthRegistry) { r.timeout = d }
}

// DefaultHealthRegistry runs its checkers concurrently. It is safe for
// concurrent use.
type DefaultHealthRegistry struct {
	mu       sync.RWMutex
	byName   map[string]HealthChecker
	order    []string
	timeout  time.Duration
	clockNow func() time.Time
}

// NewHealthRegistry returns an empty registry.
func NewHealthRegistry(opts ...RegistryOption) *DefaultHealthRegistry {
	r := &DefaultHealthRegistry{
		byName:   map[string]HealthChecker{},
		timeout:  DefaultCheckTimeout,
		clockNow: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds checker under its name, which must be unused.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	name := checker.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
	}

	r.byName[name] = checker
	r.order = append(r.order, name)

	return nil
}

// Names lists registered checkers in registration order.
func (r *DefaultHealthRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// CheckAll runs every checker at once. One failure makes the whole result
// unhealthy; an empty registry is healthy.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	checkers := make([]HealthChecker, len(names))
	for i, name := range names {
		checkers[i] = r.byName[name]
	}
	r.mu.RUnlock()

	results := make([]*CheckResult, len(checkers))

	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Go(func() { results[i] = r.check(ctx, checker) })
	}
	wg.Wait()

	out := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(names)),
		Timestamp: r.clockNow(),
	}

	for i, name := range names {
		out.Checks[name] = results[i]
		if results[i].Status != HealthStatusHealthy {
			out.Status = HealthStatusUnhealthy
		}
	}

	return out
}

func (r *DefaultHealthRegistry) check(ctx context.Context, checker HealthChecker) *CheckResult {
	if _, bounded := ctx.Deadline(); !bounded && r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	err := checker.Check(ctx)
	res := &CheckResult{Status: HealthStatusHealthy, Duration: time.Since(start)}

	if err != nil {
		res.Status = HealthStatusUnhealthy
		res.Message = err.Error()
	}

	return res
}
