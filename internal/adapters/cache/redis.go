package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/okian/folio/pkg/logger"
	"github.com/okian/folio/pkg/metrics"
)

const (
	defaultRedisAddr   = "localhost:6379"
	defaultKeyPrefix   = "folio:"
	defaultDialTimeout = 2 * time.Second
)

// Redis is a Store backed by a Redis server.
//
// When the server cannot be reached at construction the store runs in bypass
// mode: reads miss, writes are dropped, and no error is returned. Runtime
// failures are returned to the caller and logged once.
type Redis struct {
	addr        string
	password    string
	db          int
	prefix      string
	dialTimeout time.Duration
	log         logger.Logger

	client            *redis.Client
	warnedUnavailable atomic.Bool
}

var _ Store = (*Redis)(nil)

// NewRedis connects to Redis and pings it once.
func NewRedis(ctx context.Context, opts ...RedisOption) *Redis {
	r := &Redis{
		addr:        defaultRedisAddr,
		prefix:      defaultKeyPrefix,
		dialTimeout: defaultDialTimeout,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     r.addr,
		Password: r.password,
		DB:       r.db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, r.dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		r.log.Warn(ctx, "redis unavailable, bypassing cache",
			logger.String("addr", r.addr),
			logger.Error(err))
		r.warnedUnavailable.Store(true)
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

// Bypassed reports whether the store is running without a server.
func (r *Redis) Bypassed() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(ctx context.Context, err error) {
	metrics.RecordCacheError()
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn(ctx, "redis unavailable, bypassing cache", logger.Error(err))
	}
}

// Ping implements Store.
func (r *Redis) Ping(ctx context.Context) error {
	if r.Bypassed() {
		return ErrUnavailable
	}
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// GetJSON implements Store.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.Bypassed() {
		return false, nil
	}
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(ctx, err)
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return true, nil
}

// SetJSON implements Store.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.Bypassed() {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := r.client.Set(ctx, r.prefix+key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(ctx, err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.Bypassed() {
		return nil
	}
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.warnUnavailableOnce(ctx, err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Close implements Store.
func (r *Redis) Close() error {
	if r.Bypassed() {
		return nil
	}
	return r.client.Close()
}
