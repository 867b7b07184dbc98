package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelres/internal/record/core"

	"github.com/sony/gobreaker"
)

// ErrBackendUnavailable is returned while the circuit breaker around a remote
// backend is open.
var ErrBackendUnavailable = errors.New("record backend unavailable")

// BreakerSettings tunes WithBreaker. Zero values pick the defaults.
type BreakerSettings struct {
	MaxFailures uint32
	Timeout     time.Duration
	Logger      Logger
}

type breakerBackend struct {
	next core.Backend
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps a backend so that repeated transport failures trip a
// circuit breaker and fail fast until the backend recovers. A missing
// collection is a successful read and never counts as a failure.
func WithBreaker(next core.Backend, settings BreakerSettings) core.Backend {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 3
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 10 * time.Second
	}
	logger := settings.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	name := fmt.Sprintf("record-%s", next.Driver())
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, core.ErrNotExist)
		},
	})
	return &breakerBackend{next: next, cb: cb}
}

func (b *breakerBackend) Driver() core.Driver { return b.next.Driver() }

func (b *breakerBackend) Read(ctx context.Context, name string) ([]byte, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Read(ctx, name)
	})
	if err != nil {
		return nil, breakerErr(err)
	}
	data, _ := out.([]byte)
	return data, nil
}

func (b *breakerBackend) Write(ctx context.Context, name string, data []byte) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Write(ctx, name, data)
	})
	return breakerErr(err)
}

// Close closes the wrapped backend when it holds resources.
func (b *breakerBackend) Close() error {
	return Close(b.next)
}

func breakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return err
}
