package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-contact-book/internal/config"
	"github.com/MKhiriev/go-contact-book/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages aggregates every persistence backend used by the service layer.
type Storages struct {
	UserRepository    UserRepository
	ContactRepository ContactRepository
	AvatarStorage     AvatarStorage

	// RateCounter is nil when rate limiting is disabled.
	RateCounter RateCounter

	db    *DB
	redis *redis.Client
}

// NewStorages connects to PostgreSQL (applying migrations), the S3 bucket
// and, when configured, Redis.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	avatars, err := NewS3AvatarStorage(ctx, cfg.Storage.S3, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	storages := &Storages{
		UserRepository:    NewUserRepository(db, log),
		ContactRepository: NewContactRepository(db, log),
		AvatarStorage:     avatars,
		db:                db,
	}

	if cfg.RateLimit.RedisAddr == "" {
		log.Info().Msg("rate limiting disabled: no redis address configured")
		return storages, nil
	}

	client, err := NewRedisClient(ctx, cfg.RateLimit, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	storages.redis = client
	storages.RateCounter = NewRedisRateCounter(client)

	return storages, nil
}

// Close releases the database and Redis connections.
func (s *Storages) Close() error {
	var err error
	if s.redis != nil {
		if closeErr := s.redis.Close(); closeErr != nil {
			err = fmt.Errorf("error closing redis: %w", closeErr)
		}
	}
	if s.db != nil {
		if closeErr := s.db.Close(); closeErr != nil {
			err = fmt.Errorf("error closing database: %w", closeErr)
		}
	}
	return err
}
