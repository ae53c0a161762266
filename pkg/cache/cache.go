// Package cache provides a Redis-backed byte cache with lifecycle coordination.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/JaimeStill/registrar/pkg/lifecycle"
)

// ErrMiss indicates the key has no cached value.
var ErrMiss = errors.New("cache miss")

// System stores opaque values under namespaced keys.
type System interface {
	// Start registers a ping on startup and client close on shutdown.
	Start(lc *lifecycle.Coordinator) error
	// Get returns the cached value or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value with the configured TTL.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

type redis struct {
	rdb         *goredis.Client
	prefix      string
	ttl         time.Duration
	dialTimeout time.Duration
	logger      *slog.Logger
}

// New creates a Redis cache. The client connects lazily; Start verifies reachability.
func New(cfg *Config, logger *slog.Logger) System {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeoutDuration(),
	})

	return &redis{
		rdb:         rdb,
		prefix:      cfg.KeyPrefix,
		ttl:         cfg.TTLDuration(),
		dialTimeout: cfg.DialTimeoutDuration(),
		logger:      logger.With("system", "cache"),
	}
}

func (r *redis) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("starting cache connection")

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), r.dialTimeout)
		defer cancel()

		if err := r.rdb.Ping(ctx).Err(); err != nil {
			r.logger.Error("cache ping failed", "error", err)
			return
		}

		r.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		r.logger.Info("closing cache connection")

		if err := r.rdb.Close(); err != nil {
			r.logger.Error("cache close failed", "error", err)
			return
		}

		r.logger.Info("cache connection closed")
	})

	return nil
}

func (r *redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, nil
}

func (r *redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (r *redis) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

func (r *redis) key(k string) string {
	return r.prefix + ":" + k
}
