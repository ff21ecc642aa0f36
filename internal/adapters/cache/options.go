package cache

import (
	"strings"
	"time"

	"github.com/okian/folio/pkg/logger"
)

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithAddr sets the host:port of the Redis server.
func WithAddr(addr string) RedisOption {
	return func(r *Redis) {
		if addr = strings.TrimSpace(addr); addr != "" {
			r.addr = addr
		}
	}
}

// WithPassword sets the Redis password.
func WithPassword(password string) RedisOption {
	return func(r *Redis) {
		r.password = password
	}
}

// WithDB selects the Redis logical database.
func WithDB(db int) RedisOption {
	return func(r *Redis) {
		if db >= 0 {
			r.db = db
		}
	}
}

// WithKeyPrefix namespaces every key.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithDialTimeout bounds the startup ping.
func WithDialTimeout(d time.Duration) RedisOption {
	return func(r *Redis) {
		if d > 0 {
			r.dialTimeout = d
		}
	}
}

// WithLogger sets the logger used to report that the cache is bypassed.
func WithLogger(l logger.Logger) RedisOption {
	return func(r *Redis) {
		if l != nil {
			r.log = l
		}
	}
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}
