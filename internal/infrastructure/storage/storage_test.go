package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	mem, err := NewBadgerInMemory()
	require.NoError(t, err)

	disk, err := NewBadger(t.TempDir())
	require.NoError(t, err)

	all := map[string]Backend{
		"memory":          NewMemory(),
		"badger-inmemory": mem,
		"badger-disk":     disk,
	}
	t.Cleanup(func() {
		for _, b := range all {
			_ = b.Close()
		}
	})
	return all
}

func TestBackendContract(t *testing.T) {
	ctx := context.Background()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := b.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, b.Set(ctx, "aurora.filesystem", []byte("tree")))
			require.NoError(t, b.Set(ctx, "aurora.sound", []byte(`{"master":1}`)))
			require.NoError(t, b.Set(ctx, "other", []byte("x")))

			got, err := b.Get(ctx, "aurora.filesystem")
			require.NoError(t, err)
			assert.Equal(t, []byte("tree"), got)

			require.NoError(t, b.Set(ctx, "aurora.filesystem", []byte("tree v2")))
			got, err = b.Get(ctx, "aurora.filesystem")
			require.NoError(t, err)
			assert.Equal(t, []byte("tree v2"), got)

			keys, err := b.Keys(ctx, "aurora.")
			require.NoError(t, err)
			assert.Equal(t, []string{"aurora.filesystem", "aurora.sound"}, keys)

			require.NoError(t, b.Delete(ctx, "aurora.sound"))
			_, err = b.Get(ctx, "aurora.sound")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	assert.ErrorIs(t, m.Set(ctx, "k", nil), context.Canceled)
	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	b, err := Open(Config{Kind: KindMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = Open(Config{Kind: "BADGER", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Badger{}, b)
	require.NoError(t, b.Close())

	_, err = Open(Config{Kind: KindBadger})
	assert.Error(t, err)

	_, err = Open(Config{Kind: "redis"})
	assert.Error(t, err)
}
