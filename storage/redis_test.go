package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "test", testLogger()), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, _ := newTestRedisStore(t)

	s.Set(KeyToken, "tok-1")
	if got := s.Get(KeyToken); got != "tok-1" {
		t.Fatalf("expected token, got %q", got)
	}

	s.Remove(KeyToken)
	if got := s.Get(KeyToken); got != "" {
		t.Fatalf("expected removed token to read empty, got %q", got)
	}
}

func TestRedisStoreUsesPrefixedHashKey(t *testing.T) {
	s, mr := newTestRedisStore(t)

	s.Set(KeyUsername, "alice")

	got := mr.HGet("test:session", KeyUsername)
	if got != "alice" {
		t.Fatalf("expected value under test:session hash, got %q", got)
	}
}

func TestRedisStoreDegradesWhenRedisDown(t *testing.T) {
	s, mr := newTestRedisStore(t)
	s.Set(KeyToken, "tok-1")
	mr.Close()

	// No panics, no errors: reads degrade to empty, writes are dropped.
	if got := s.Get(KeyToken); got != "" {
		t.Fatalf("expected degraded read to be empty, got %q", got)
	}
	s.Set(KeyToken, "tok-2")
	s.Remove(KeyToken)
}
