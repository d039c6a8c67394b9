package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a minimal durable key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Kind names a backend implementation.
type Kind string

const (
	KindMemory Kind = "memory"
	KindBadger Kind = "badger"
)

// Config selects and configures a backend.
type Config struct {
	Kind Kind
	Dir  string
}

// Open creates the backend described by cfg.
func Open(cfg Config) (Backend, error) {
	switch Kind(strings.ToLower(string(cfg.Kind))) {
	case KindMemory, "":
		return NewMemory(), nil
	case KindBadger:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("badger storage requires a data directory")
		}
		return NewBadger(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Kind)
	}
}
