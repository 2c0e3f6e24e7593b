package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/mandatedisrael/basefly/internal/adapters/redis"
)

type tokenValue struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func newTestCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redisad.New(mr.Addr(), "", 0), mr
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	want := tokenValue{AccessToken: "tok-1", ExpiresAt: time.Now().Add(30 * time.Minute).UTC()}
	if err := cache.Set(ctx, "amadeus:token", want, 1700); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got tokenValue
	ok, err := cache.Get(ctx, "amadeus:token", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit")
	}
	if got.AccessToken != want.AccessToken || !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestCache_MissIsNotAnError(t *testing.T) {
	cache, _ := newTestCache(t)

	var got tokenValue
	ok, err := cache.Get(context.Background(), "absent", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", tokenValue{AccessToken: "tok"}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var got tokenValue
	ok, err := cache.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected expiry after TTL")
	}
}

func TestCache_Del(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "k", tokenValue{AccessToken: "tok"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := cache.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}

	var got tokenValue
	ok, _ := cache.Get(ctx, "k", &got)
	if ok {
		t.Fatalf("expected key gone after del")
	}
}
