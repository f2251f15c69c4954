package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() {
		if err := rdb.Close(); err != nil {
			t.Fatalf("close redis: %v", err)
		}
	})
	return NewStore(rdb), s
}

func TestStore_Acquire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "otp:guest@example.com", time.Minute)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}

	ok, err = store.Acquire(ctx, "otp:guest@example.com", time.Minute)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Fatal("expected second acquire to be throttled")
	}

	mr.FastForward(61 * time.Second)

	ok, err = store.Acquire(ctx, "otp:guest@example.com", time.Minute)
	if err != nil {
		t.Fatalf("third acquire: %v", err)
	}
	if !ok {
		t.Fatal("expected acquire after ttl to succeed")
	}
}

func TestStore_JSON(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	type hotel struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	var got []hotel
	found, err := store.GetJSON(ctx, "hotels", &got)
	if err != nil || found {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}

	want := []hotel{{ID: 1, Name: "Riverside"}}
	if err := store.SetJSON(ctx, "hotels", want, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	found, err = store.GetJSON(ctx, "hotels", &got)
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("unexpected value %+v", got)
	}

	if err := store.Delete(ctx, "hotels"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	found, _ = store.GetJSON(ctx, "hotels", &got)
	if found {
		t.Fatal("expected miss after delete")
	}
}

func TestStore_Disabled(t *testing.T) {
	var store *Store
	ctx := context.Background()

	ok, err := store.Acquire(ctx, "k", time.Minute)
	if err != nil || !ok {
		t.Fatalf("disabled store should always acquire: %v %v", ok, err)
	}
	if err := store.SetJSON(ctx, "k", 1, time.Minute); err != nil {
		t.Fatalf("disabled set: %v", err)
	}
	var v int
	if found, err := store.GetJSON(ctx, "k", &v); found || err != nil {
		t.Fatalf("disabled get: %v %v", found, err)
	}
}
