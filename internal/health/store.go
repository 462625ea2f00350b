package health

import (
	"sync"
	"time"

	"github.com/NZ-WEB/go-monitoring/pkg/logger"

	"go.uber.org/zap"
)

// Store is a concurrency-safe registry of named health errors.
// The zero value is not usable; create one with NewStore.
type Store struct {
	mu     sync.RWMutex
	errors map[string]Error
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the clock used to timestamp errors.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty, healthy store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		errors: make(map[string]Error),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetError records a fault under key, overwriting any previous fault with the
// same key. An empty code means the fault carries no code.
func (s *Store) SetError(key, message, code string) {
	s.mu.Lock()
	wasHealthy := len(s.errors) == 0
	s.errors[key] = Error{
		Message:   message,
		Code:      code,
		Timestamp: s.now().UnixMilli(),
	}
	s.mu.Unlock()

	if wasHealthy {
		logger.Warn("health state changed to unhealthy",
			zap.String("key", key),
			zap.String("message", message),
			zap.String("code", code))
	}
}

// ClearError removes the fault stored under key. Clearing an unknown key is a no-op.
func (s *Store) ClearError(key string) {
	s.mu.Lock()
	_, found := s.errors[key]
	delete(s.errors, key)
	recovered := found && len(s.errors) == 0
	s.mu.Unlock()

	if recovered {
		logger.Info("health state changed to healthy", zap.String("cleared", key))
	}
}

// ClearAll removes every fault.
func (s *Store) ClearAll() {
	s.mu.Lock()
	n := len(s.errors)
	s.errors = make(map[string]Error)
	s.mu.Unlock()

	if n > 0 {
		logger.Info("health state changed to healthy", zap.Int("count", n))
	}
}

// Snapshot returns a deep copy of the current state. Mutating the result
// never affects the store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	errs := make(map[string]Error, len(s.errors))
	for k, v := range s.errors {
		errs[k] = v
	}
	return State{
		IsHealthy: len(errs) == 0,
		Errors:    errs,
	}
}

// IsHealthy reports whether no faults are recorded.
func (s *Store) IsHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.errors) == 0
}

// Len returns the number of recorded faults.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.errors)
}
