// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// stylesheet.go caches rendered theme CSS in Valkey so /theme.css can
// skip the snapshot fetch and the render on most requests.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// stylesheetKeyPrefix is the Valkey key prefix for rendered stylesheets.
	stylesheetKeyPrefix = "theme-css:"

	// DefaultStylesheetTTL is how long a rendered stylesheet stays cached.
	DefaultStylesheetTTL = 60 * time.Second
)

// StylesheetCache manages rendered theme CSS in Valkey.
type StylesheetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStylesheetCache creates a stylesheet cache backed by the given client.
func NewStylesheetCache(client *redis.Client, ttl time.Duration) *StylesheetCache {
	if ttl == 0 {
		ttl = DefaultStylesheetTTL
	}
	return &StylesheetCache{client: client, ttl: ttl}
}

// Get returns the cached CSS for a theme. Errors count as a miss.
func (sc *StylesheetCache) Get(ctx context.Context, themeID string) ([]byte, bool) {
	val, err := sc.client.Get(ctx, stylesheetKeyPrefix+themeID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("stylesheet cache get error", "theme", themeID, "error", err)
		return nil, false
	}
	slog.Debug("stylesheet cache hit", "theme", themeID)
	return val, true
}

// Set stores rendered CSS for a theme with the configured TTL.
func (sc *StylesheetCache) Set(ctx context.Context, themeID string, css []byte) {
	if err := sc.client.Set(ctx, stylesheetKeyPrefix+themeID, css, sc.ttl).Err(); err != nil {
		slog.Warn("stylesheet cache set error", "theme", themeID, "error", err)
	}
}

// Invalidate removes the cached CSS for a theme. Called after a publish.
func (sc *StylesheetCache) Invalidate(ctx context.Context, themeID string) {
	if err := sc.client.Del(ctx, stylesheetKeyPrefix+themeID).Err(); err != nil {
		slog.Warn("stylesheet cache invalidate error", "theme", themeID, "error", err)
		return
	}
	slog.Debug("stylesheet cache invalidated", "theme", themeID)
}

// InvalidateAll removes every cached stylesheet by scanning for the prefix.
func (sc *StylesheetCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := sc.client.Scan(ctx, cursor, stylesheetKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("stylesheet cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("stylesheet cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("stylesheet cache cleared", "deleted", deleted)
	}
}
