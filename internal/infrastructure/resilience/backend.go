package resilience

import (
	"context"
	"errors"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/storage"
)

// Backend fails storage calls fast once the wrapped backend keeps erroring.
// Every write carries a full snapshot, so nothing is lost beyond the outage:
// the first write after recovery persists the latest state.
type Backend struct {
	inner   storage.Backend
	breaker *Breaker
}

// NewBackend wraps inner with a breaker named "storage". Missing keys do not
// count as failures.
func NewBackend(inner storage.Backend, settings Settings) *Backend {
	ignore := settings.Ignore
	settings.Ignore = func(err error) bool {
		return errors.Is(err, storage.ErrNotFound) || (ignore != nil && ignore(err))
	}
	return &Backend{inner: inner, breaker: New("storage", settings)}
}

// Breaker exposes the breaker for inspection.
func (b *Backend) Breaker() *Breaker {
	return b.breaker
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.breaker.Do(func() error {
		var err error
		data, err = b.inner.Get(ctx, key)
		return err
	})
	return data, err
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	return b.breaker.Do(func() error {
		return b.inner.Set(ctx, key, value)
	})
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.breaker.Do(func() error {
		return b.inner.Delete(ctx, key)
	})
}

func (b *Backend) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := b.breaker.Do(func() error {
		var err error
		keys, err = b.inner.Keys(ctx, prefix)
		return err
	})
	return keys, err
}

// Close closes the wrapped backend regardless of breaker state.
func (b *Backend) Close() error {
	return b.inner.Close()
}
