package score

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/crystal-raiders/pkg/logging"
)

// BreakerSettings tune GuardedStore.
type BreakerSettings struct {
	MaxConsecutiveFailures uint32
	Timeout                time.Duration // how long the breaker stays open
}

// DefaultBreakerSettings trips after three failures in a row and retries
// after thirty seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{MaxConsecutiveFailures: 3, Timeout: 30 * time.Second}
}

// ErrStoreUnavailable is returned while the breaker is open.
var ErrStoreUnavailable = errors.New("score store unavailable")

// GuardedStore wraps a Store with a circuit breaker so a broken disk is not
// hit on every game over.
type GuardedStore struct {
	inner   Store
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewGuardedStore wraps inner. A nil logger discards breaker transitions.
func NewGuardedStore(inner Store, settings BreakerSettings, logger *logging.Logger) *GuardedStore {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.Component("score_store")
	if settings.MaxConsecutiveFailures == 0 {
		settings.MaxConsecutiveFailures = DefaultBreakerSettings().MaxConsecutiveFailures
	}

	return &GuardedStore{
		inner:  inner,
		logger: logger,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "score-store",
			MaxRequests: 1,
			Timeout:     settings.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= settings.MaxConsecutiveFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info(context.Background(), "circuit breaker state changed",
					"name", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		}),
	}
}

// Load reads through the breaker.
func (s *GuardedStore) Load() (float64, error) {
	v, err := s.breaker.Execute(func() (interface{}, error) {
		return s.inner.Load()
	})
	if err != nil {
		return 0, s.wrap(err)
	}
	return v.(float64), nil
}

// Save writes through the breaker.
func (s *GuardedStore) Save(best float64) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.inner.Save(best)
	})
	return s.wrap(err)
}

// Open reports whether the breaker is currently rejecting calls.
func (s *GuardedStore) Open() bool {
	return s.breaker.State() == gobreaker.StateOpen
}

func (s *GuardedStore) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return err
}
