package ledger

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	ctx := context.Background()

	sess := &Session{ID: "s1", Records: scenarioRecords(), Page: 2, Loaded: true, Filter: FilterState{Status: "pending"}}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	sess.Records[0].WalletAddress = "changed"

	got, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Page != 2 || got.Filter.Status != "pending" || len(got.Records) != 25 {
		t.Fatalf("unexpected session %+v", got)
	}
	if got.Records[0].WalletAddress == "changed" {
		t.Fatal("store shares the record slice with the caller")
	}
	if !got.Records[0].TransactionTime.Equal(baseTime) || got.Records[0].TransactionID != "100" {
		t.Fatalf("record did not round trip: %+v", got.Records[0])
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second delete, got %v", err)
	}
}

func TestMemorySessionStoreSlidingExpiry(t *testing.T) {
	now := time.Unix(0, 0)
	store := NewMemorySessionStore(10 * time.Minute).(*memorySessionStore)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Save(ctx, &Session{ID: "s1", Loaded: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(9 * time.Minute)
	if _, err := store.Load(ctx, "s1"); err != nil {
		t.Fatalf("expected session alive, got %v", err)
	}

	// Load extended the expiry.
	now = now.Add(9 * time.Minute)
	if _, err := store.Load(ctx, "s1"); err != nil {
		t.Fatalf("expected sliding ttl, got %v", err)
	}

	now = now.Add(11 * time.Minute)
	if _, err := store.Load(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestRedisSessionStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skipf("redis not available")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	store := NewRedisSessionStore(client, time.Minute)
	sess := &Session{ID: "test-" + time.Now().Format("150405.000000"), Records: scenarioRecords(), Page: 1, Loaded: true}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, sess.ID)
	if err != nil || len(got.Records) != 25 {
		t.Fatalf("unexpected load %v %v", got, err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
