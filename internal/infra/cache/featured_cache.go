// Package cache provides the Redis-backed featured products cache.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"campusmart/config"
	"campusmart/internal/domain/entity"
	"campusmart/internal/domain/lifecycle"
	"campusmart/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// featuredKey is the single cache key for the featured projection.
const featuredKey = "campusmart:featured"

// redisFeaturedCache implements the FeaturedCache interface using Redis.
// Failures degrade to cache misses; the catalog recomputes the projection.
type redisFeaturedCache struct {
	client *redis.Client
	logger *slog.Logger
}

// noopFeaturedCache always misses, used when Redis is not configured.
type noopFeaturedCache struct{}

func (noopFeaturedCache) Get(context.Context) ([]*entity.Product, bool) { return nil, false }

func (noopFeaturedCache) Set(context.Context, []*entity.Product, time.Duration) {}

// Params holds dependencies for the featured cache, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the featured cache. Without Redis configuration a no-op cache
// is returned and every read recomputes.
func New(params Params) (service.FeaturedCache, error) {
	cfg := params.Config.Redis
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Redis not configured, featured cache disabled")

		return noopFeaturedCache{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return &redisFeaturedCache{
		client: client,
		logger: params.Logger,
	}, nil
}

// Get returns the cached projection, or (nil, false) on miss or error.
func (c *redisFeaturedCache) Get(ctx context.Context) ([]*entity.Product, bool) {
	raw, err := c.client.Get(ctx, featuredKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Featured cache read failed", slog.Any("error", err))
		}

		return nil, false
	}

	var products []*entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("Featured cache payload corrupt, dropping", slog.Any("error", err))
		c.client.Del(ctx, featuredKey)

		return nil, false
	}

	return products, true
}

// Set stores the projection for ttl. Write failures are logged and ignored.
func (c *redisFeaturedCache) Set(ctx context.Context, products []*entity.Product, ttl time.Duration) {
	raw, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("Featured cache marshal failed", slog.Any("error", err))

		return
	}

	if err := c.client.Set(ctx, featuredKey, raw, ttl).Err(); err != nil {
		c.logger.Warn("Featured cache write failed", slog.Any("error", err))
	}
}
