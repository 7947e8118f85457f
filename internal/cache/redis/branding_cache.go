package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

const brandingKeyPrefix = "claimdesk:branding:"

type brandingCache struct {
	client *goredis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// NewBrandingCache creates a Redis-backed BrandingCache. The caller owns client.
func NewBrandingCache(client *goredis.Client, ttl time.Duration, log *zap.Logger) port.BrandingCache {
	return &brandingCache{client: client, ttl: ttl, log: log.Named("cache.branding")}
}

func brandingKey(slug string) string {
	return brandingKeyPrefix + slug
}

func (c *brandingCache) Get(ctx context.Context, slug string) (*domain.TenantBranding, bool, error) {
	data, err := c.client.Get(ctx, brandingKey(slug)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get branding: %w", err)
	}

	var branding domain.TenantBranding
	if err := json.Unmarshal(data, &branding); err != nil {
		c.log.Warn("dropping corrupt branding entry", zap.String("slug", slug), zap.Error(err))
		_ = c.client.Del(ctx, brandingKey(slug)).Err()
		return nil, false, nil
	}
	return &branding, true, nil
}

func (c *brandingCache) Set(ctx context.Context, slug string, branding *domain.TenantBranding) error {
	data, err := json.Marshal(branding)
	if err != nil {
		return fmt.Errorf("marshal branding: %w", err)
	}
	if err := c.client.Set(ctx, brandingKey(slug), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set branding: %w", err)
	}
	return nil
}

func (c *brandingCache) Delete(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, brandingKey(slug)).Err(); err != nil {
		return fmt.Errorf("redis del branding: %w", err)
	}
	return nil
}
