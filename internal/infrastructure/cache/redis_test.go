package cache

import (
	"context"
	"testing"
	"time"

	"careerpath/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

func TestRedis_UnavailableIsNoop(t *testing.T) {
	r := &Redis{logger: logger.NewNop()}
	ctx := context.Background()

	var out []string
	hit, err := r.GetJSON(ctx, "catalog:courses", &out)
	if hit || err != nil {
		t.Fatalf("expected silent miss, got hit=%v err=%v", hit, err)
	}
	if err := r.SetJSON(ctx, "catalog:courses", []string{"a"}, 0); err != nil {
		t.Fatalf("set should be a no-op: %v", err)
	}
	if err := r.Delete(ctx, "catalog:courses", "catalog:course:1"); err != nil {
		t.Fatalf("delete should be a no-op: %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("ping should report the cache as unavailable")
	}

	s := NewSessionStore(r)
	if err := s.Remember(ctx, "u1", "tok", time.Minute); err != nil {
		t.Fatalf("remember should be a no-op: %v", err)
	}
	if _, ok, err := s.Forget(ctx, "u1"); ok || err != nil {
		t.Fatalf("forget should find nothing, got ok=%v err=%v", ok, err)
	}
}

func TestRedis_ConnectionErrorsSurface(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	r := NewRedisWithClient(client, 0, logger.NewNop())
	defer r.Close()
	ctx := context.Background()

	var out map[string]any
	if _, err := r.GetJSON(ctx, "k", &out); err == nil {
		t.Fatalf("expected connection error")
	}
	if !r.warnedUnavailable.Load() {
		t.Fatalf("expected the unavailability warning to be recorded")
	}
	if err := r.SetJSON(ctx, "k", map[string]any{"a": 1}, 0); err == nil {
		t.Fatalf("expected connection error on set")
	}
}

func TestRedis_DefaultTTL(t *testing.T) {
	if got := (&Redis{}).defaultTTL(); got != defaultTTL {
		t.Fatalf("expected %v, got %v", defaultTTL, got)
	}
	if got := (&Redis{ttl: time.Minute}).defaultTTL(); got != time.Minute {
		t.Fatalf("expected configured ttl, got %v", got)
	}
}
