// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// draftKeyPrefix is the Valkey key prefix for editor drafts.
const draftKeyPrefix = "theme-draft-v1:"

// DraftCache stores unpublished editor snapshots in Valkey. Drafts have
// no expiry by default; they live until published work is reset.
type DraftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a draft store. A zero ttl keeps drafts forever.
func NewDraftCache(client *redis.Client, ttl time.Duration) *DraftCache {
	return &DraftCache{client: client, ttl: ttl}
}

// LoadDraft returns the raw draft, or nil when there is none.
func (dc *DraftCache) LoadDraft(ctx context.Context, themeID string) ([]byte, error) {
	val, err := dc.client.Get(ctx, draftKeyPrefix+themeID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return val, nil
}

// SaveDraft replaces the stored draft.
func (dc *DraftCache) SaveDraft(ctx context.Context, themeID string, data []byte) error {
	if err := dc.client.Set(ctx, draftKeyPrefix+themeID, data, dc.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// ClearDraft deletes the stored draft.
func (dc *DraftCache) ClearDraft(ctx context.Context, themeID string) error {
	if err := dc.client.Del(ctx, draftKeyPrefix+themeID).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
