package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_Key(t *testing.T) {
	s := NewIdempotencyStore(nil, time.Minute)
	assert.Equal(t, "idem:post:user-1:abc", s.key("post", "user-1", "abc"))
	assert.NotEqual(t, s.key("post", "u", "k"), s.key("comment", "u", "k"), "scopes must not collide")
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewIdempotencyStore(nil, 0).ttl)
	assert.Equal(t, time.Minute, NewIdempotencyStore(nil, time.Minute).ttl)
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions(Config{Addr: "cache:6379", Password: "s3cret", DB: 2})
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "s3cret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, defaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, defaultOpTimeout, opts.ReadTimeout)
	assert.Equal(t, defaultOpTimeout, opts.WriteTimeout)

	opts = clientOptions(Config{DialTimeout: time.Second, OpTimeout: 50 * time.Millisecond})
	assert.Equal(t, time.Second, opts.DialTimeout)
	assert.Equal(t, 50*time.Millisecond, opts.ReadTimeout)
}

// memoryKV is an in-process stand-in for the Get/SetNX subset of Redis.
type memoryKV struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryKV) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryKV) SetNX(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if m.err != nil {
		return redis.NewBoolResult(false, m.err)
	}
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func TestIdempotencyStore_LookupMiss(t *testing.T) {
	s := NewIdempotencyStore(newMemoryKV(), time.Minute)

	id, ok, err := s.Lookup(context.Background(), "post", "user-1", "abc")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestIdempotencyStore_RememberThenLookup(t *testing.T) {
	kv := newMemoryKV()
	s := NewIdempotencyStore(kv, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Remember(ctx, "post", "user-1", "abc", "post-42"))
	assert.Equal(t, time.Minute, kv.ttls["idem:post:user-1:abc"])

	id, ok, err := s.Lookup(ctx, "post", "user-1", "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "post-42", id)

	_, ok, err = s.Lookup(ctx, "post", "user-2", "abc")
	require.NoError(t, err)
	assert.False(t, ok, "keys are scoped per owner")
}

func TestIdempotencyStore_RememberKeepsFirst(t *testing.T) {
	s := NewIdempotencyStore(newMemoryKV(), time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Remember(ctx, "comment", "user-1", "k", "first"))
	require.NoError(t, s.Remember(ctx, "comment", "user-1", "k", "second"))

	id, _, err := s.Lookup(ctx, "comment", "user-1", "k")
	require.NoError(t, err)
	assert.Equal(t, "first", id)
}

func TestIdempotencyStore_Errors(t *testing.T) {
	kv := newMemoryKV()
	kv.err = errors.New("connection refused")
	s := NewIdempotencyStore(kv, time.Minute)
	ctx := context.Background()

	_, ok, err := s.Lookup(ctx, "post", "user-1", "abc")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "idempotency lookup")
	assert.ErrorIs(t, err, kv.err)

	err = s.Remember(ctx, "post", "user-1", "abc", "post-42")
	assert.ErrorContains(t, err, "idempotency remember")
	assert.ErrorIs(t, err, kv.err)
}
