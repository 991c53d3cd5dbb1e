package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/redis/go-redis/v9"
)

const rateCounterKeyPrefix = "contact-book:ratelimit:"

// redisRateCounter is the Redis implementation of [RateCounter]. A window
// starts with the first hit of a key and ends when the key expires.
type redisRateCounter struct {
	client redis.UniversalClient
}

// NewRedisClient connects to the Redis instance of the rate limiter and
// checks it with a ping.
func NewRedisClient(ctx context.Context, cfg config.RateLimit, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisRateCounter wraps client into a [RateCounter].
func NewRedisRateCounter(client redis.UniversalClient) RateCounter {
	return &redisRateCounter{client: client}
}

// Hit increments the counter of key and starts its window if the key is new.
func (r *redisRateCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := rateCounterKeyPrefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*redisRateCounter.Hit").
			Str("key", fullKey).
			Msg("error counting hit")
		return 0, fmt.Errorf("%w: %w", ErrCountingHits, err)
	}

	return incr.Val(), nil
}
