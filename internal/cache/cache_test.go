// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{stylesheetKeyPrefix + "*", draftKeyPrefix + "*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestStylesheetCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewStylesheetCache(client, time.Minute)
	ctx := context.Background()

	data, ok := sc.Get(ctx, "main")
	if ok || data != nil {
		t.Fatal("expected cache miss")
	}

	css := []byte(":root {\n  --primary-cyan: #009e9a;\n}\n")
	sc.Set(ctx, "main", css)

	data, ok = sc.Get(ctx, "main")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(data) != string(css) {
		t.Errorf("data mismatch: got %q, want %q", data, css)
	}
}

func TestStylesheetCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewStylesheetCache(client, time.Minute)
	ctx := context.Background()

	sc.Set(ctx, "main", []byte("a"))
	sc.Set(ctx, "other", []byte("b"))

	sc.Invalidate(ctx, "main")
	if _, ok := sc.Get(ctx, "main"); ok {
		t.Error("expected miss after Invalidate")
	}
	if _, ok := sc.Get(ctx, "other"); !ok {
		t.Error("Invalidate removed an unrelated theme")
	}

	sc.InvalidateAll(ctx)
	if _, ok := sc.Get(ctx, "other"); ok {
		t.Error("expected miss after InvalidateAll")
	}
}

func TestNewStylesheetCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	sc := NewStylesheetCache(client, 0)
	if sc.ttl != DefaultStylesheetTTL {
		t.Errorf("expected DefaultStylesheetTTL (%v), got %v", DefaultStylesheetTTL, sc.ttl)
	}
}

func TestDraftCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	dc := NewDraftCache(client, 0)
	ctx := context.Background()

	got, err := dc.LoadDraft(ctx, "main")
	if err != nil || got != nil {
		t.Fatalf("LoadDraft missing = %q, %v", got, err)
	}

	draft := []byte(`{"families":[],"gradients":[]}`)
	if err := dc.SaveDraft(ctx, "main", draft); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	got, err = dc.LoadDraft(ctx, "main")
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	if string(got) != string(draft) {
		t.Errorf("LoadDraft = %q, want %q", got, draft)
	}

	ttl, err := client.TTL(ctx, draftKeyPrefix+"main").Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl != -1 {
		t.Errorf("draft TTL = %v, want no expiry", ttl)
	}

	if err := dc.ClearDraft(ctx, "main"); err != nil {
		t.Fatalf("ClearDraft: %v", err)
	}
	got, err = dc.LoadDraft(ctx, "main")
	if err != nil || got != nil {
		t.Errorf("LoadDraft after clear = %q, %v", got, err)
	}
}
