package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/settings-admin/settings-admin/internal/logger/adapter/stdlogger"
)

// RedisClient is the subset of the redis client used by the backend.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	FlushDB(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Redis is a backend shared by every process talking to the same database.
type Redis struct {
	client RedisClient
}

// NewRedis wraps client.
func NewRedis(client RedisClient) *Redis {
	return &Redis{client: client}
}

// DialRedis connects to addr and checks the connection.
func DialRedis(ctx context.Context, opts *redis.Options) (*Redis, error) {
	redis.SetLogger(redisLogger{stdlogger.NewComponent("redis", zerolog.WarnLevel)})

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "failed to connect redis at %s", opts.Addr)
	}

	return NewRedis(client), nil
}

// Get implements Backend.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	return val, err //nolint:wrapcheck
}

// Set implements Backend. A ttl <= 0 keeps the entry until it is deleted.
func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	return r.client.Set(ctx, key, val, ttl).Err() //nolint:wrapcheck
}

// Delete implements Backend.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err() //nolint:wrapcheck
}

// Reset implements Backend. It flushes the selected redis database.
func (r *Redis) Reset(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err() //nolint:wrapcheck
}

// Close implements Backend.
func (r *Redis) Close() error {
	return r.client.Close() //nolint:wrapcheck
}

// redisLogger routes go-redis internal messages through zerolog.
type redisLogger struct {
	l *stdlogger.Logger
}

func (r redisLogger) Printf(_ context.Context, format string, v ...any) {
	r.l.Printf("%s", fmt.Sprintf(format, v...))
}
