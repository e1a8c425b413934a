package cooldown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis хранит ключи в памяти; остальные команды Cmdable не используются
type fakeRedis struct {
	redis.Cmdable
	keys map[string]time.Duration
	err  error
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, _ interface{}, ttl time.Duration) *redis.BoolCmd {
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			delete(f.keys, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestStore_Acquire(t *testing.T) {
	fake := &fakeRedis{keys: map[string]time.Duration{}}
	store := NewStore(fake)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, 42, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, fake.keys["inspection:resend:42"])

	ok, err = store.Acquire(ctx, 42, 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Acquire(ctx, 43, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Acquire_RedisError(t *testing.T) {
	store := NewStore(&fakeRedis{err: errors.New("connection refused")})

	ok, err := store.Acquire(context.Background(), 42, time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCache)
}

func TestStore_Release(t *testing.T) {
	fake := &fakeRedis{keys: map[string]time.Duration{}}
	store := NewStore(fake)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, 42, 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, 42))
	assert.NotContains(t, fake.keys, "inspection:resend:42")

	ok, err = store.Acquire(ctx, 42, 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	err = NewStore(&fakeRedis{err: errors.New("connection refused")}).Release(ctx, 42)
	assert.ErrorIs(t, err, ErrCache)
}
