// Package readiness evaluates named dependency checks to decide whether the
// process can take traffic.
package readiness

import (
	"context"
	"fmt"
	"sync"

	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CheckFunc reports whether a dependency is available. A returned error
// marks the check as failed and becomes its reason.
type CheckFunc func(ctx context.Context) (bool, error)

// Check is a named readiness predicate.
type Check struct {
	Name string
	Func CheckFunc
}

// Result is the outcome of one check in one evaluation.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// Report is the outcome of a full evaluation.
// Results follow registration order and are nil when no checks are registered.
type Report struct {
	Ready   bool
	Results []Result
}

// Registry is an ordered, concurrency-safe list of checks.
// Names are not deduplicated: a name registered twice is evaluated twice.
type Registry struct {
	mu     sync.RWMutex
	checks []Check
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a check.
func (r *Registry) Register(check Check) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, check)
}

// Clear removes every registered check.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = nil
}

// Checks returns a copy of the registered checks in registration order.
func (r *Registry) Checks() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Check, len(r.checks))
	copy(out, r.checks)
	return out
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.checks)
}

// Evaluate runs every registered check concurrently and waits for all of
// them. A failing or panicking check never prevents the others from
// reporting. There is no intrinsic timeout; callers bound the evaluation
// through ctx if the checks honor it.
func (r *Registry) Evaluate(ctx context.Context) Report {
	checks := r.Checks()
	if len(checks) == 0 {
		return Report{Ready: true}
	}

	results := make([]Result, len(checks))

	// Every goroutine returns nil so one fault never cancels its siblings.
	var g errgroup.Group
	for i, check := range checks {
		i, check := i, check
		g.Go(func() error {
			results[i] = run(ctx, check)
			return nil
		})
	}
	_ = g.Wait()

	ready := true
	for _, res := range results {
		if !res.Passed {
			ready = false
			break
		}
	}
	return Report{Ready: ready, Results: results}
}

func run(ctx context.Context, check Check) (res Result) {
	res.Name = check.Name

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("%w: %v", ErrCheckPanicked, rec)
			logger.Error("readiness check panicked", zap.String("check", check.Name), zap.Error(err))
			res = Result{Name: check.Name, Passed: false, Reason: err.Error()}
		}
	}()

	if check.Func == nil {
		res.Reason = ErrNilCheck.Error()
		return res
	}

	passed, err := check.Func(ctx)
	if err != nil {
		logger.Debug("readiness check failed", zap.String("check", check.Name), zap.Error(err))
		res.Reason = err.Error()
		return res
	}
	res.Passed = passed
	return res
}
