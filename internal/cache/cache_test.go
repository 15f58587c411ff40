package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/restaurants/internal/config"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2, time.Minute)

	_, err := store.Get(ctx, "restaurants:1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	value := []byte(`{"id":1}`)
	require.NoError(t, store.Set(ctx, "restaurants:1", value, 0))
	value[0] = 'X'

	got, err := store.Get(ctx, "restaurants:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, string(got))

	require.NoError(t, store.Delete(ctx, "restaurants:1"))
	_, err = store.Get(ctx, "restaurants:1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.Error(t, store.Set(ctx, "", value, 0))
}

func TestMemoryStoreEvictsLeastRecent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(2, time.Minute)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, store.Set(ctx, k, []byte(k), 0))
	}

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestNewStoreDrivers(t *testing.T) {
	logger := zaptest.NewLogger(t)
	lc := fxtest.NewLifecycle(t)

	noop, err := NewStore(lc, config.Config{Cache: config.Cache{Driver: "noop"}}, logger)
	require.NoError(t, err)
	_, err = noop.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	mem, err := NewStore(lc, config.Config{Cache: config.Cache{Driver: "memory", MemorySize: 8, DefaultTTL: time.Minute}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	_, err = NewStore(lc, config.Config{Cache: config.Cache{Driver: "memcached"}}, logger)
	assert.Error(t, err)
}
