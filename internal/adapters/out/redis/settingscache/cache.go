// Package settingscache keeps the admin settings blob in Redis in front of the
// admin_settings table (cache-aside). Presence and orders are never cached here.
package settingscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/settings"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis key holding the JSON encoded settings.
const DefaultKey = "fulfillment:admin-settings"

var _ ports.SettingsProvider = (*Cache)(nil)

// Cache implements ports.SettingsProvider. A Redis outage degrades to reading the
// source on every call; it never fails a request on its own.
type Cache struct {
	client *redis.Client
	source ports.SettingsSource
	ttl    time.Duration
	key    string
	logger *slog.Logger
}

func New(client *redis.Client, source ports.SettingsSource, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	if source == nil {
		return nil, errs.NewValueIsRequiredError("settings source")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("settings cache ttl", ttl, "1ns", "unbounded")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		client: client,
		source: source,
		ttl:    ttl,
		key:    DefaultKey,
		logger: logger.With("component", "SettingsCache"),
	}, nil
}

// Current returns the cached settings, loading and storing them on a miss.
func (c *Cache) Current(ctx context.Context) (settings.Settings, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var s settings.Settings
		if uErr := json.Unmarshal(data, &s); uErr == nil {
			return s, nil
		}
		c.logger.WarnContext(ctx, "discarding unreadable settings cache entry", "key", c.key)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WarnContext(ctx, "settings cache read failed", "key", c.key, "error", err)
	}

	return c.load(ctx)
}

// Refresh reloads the settings from the source and overwrites the cache entry.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err := c.load(ctx)
	return err
}

func (c *Cache) load(ctx context.Context) (settings.Settings, error) {
	s, err := c.source.Load(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("load settings from source: %w", err)
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	if setErr := c.client.Set(ctx, c.key, payload, c.ttl).Err(); setErr != nil {
		c.logger.WarnContext(ctx, "settings cache write failed", "key", c.key, "error", setErr)
	}
	return s, nil
}
