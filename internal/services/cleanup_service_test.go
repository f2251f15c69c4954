package services

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/models"
)

func TestCleanupNow(t *testing.T) {
	store := newMemStore()
	now := time.Now()

	stale := store.addUser("stale@example.com", false)
	stale.CreatedAt = now.Add(-time.Hour)
	fresh := store.addUser("fresh@example.com", false)
	fresh.CreatedAt = now.Add(-time.Minute)
	old := store.addUser("old@example.com", true)
	old.CreatedAt = now.Add(-24 * time.Hour)

	ctx := context.Background()
	_ = store.CreateOtp(ctx, &models.OtpVerification{Email: "a@example.com", OtpCode: "111111", ExpiresAt: now.Add(-time.Second)})
	_ = store.CreateOtp(ctx, &models.OtpVerification{Email: "b@example.com", OtpCode: "222222", ExpiresAt: now.Add(time.Minute)})

	svc := NewCleanupService(store, store, time.Minute, 10*time.Minute, discardLogger())
	svc.now = func() time.Time { return now }

	users, otps := svc.CleanupNow(ctx)
	if users != 1 || otps != 1 {
		t.Fatalf("deleted users=%d otps=%d, want 1 and 1", users, otps)
	}
	if _, err := store.GetUserByID(ctx, stale.ID); err == nil {
		t.Fatal("stale unverified user survived")
	}
	for _, id := range []uint{fresh.ID, old.ID} {
		if _, err := store.GetUserByID(ctx, id); err != nil {
			t.Fatalf("user %d removed: %v", id, err)
		}
	}
}

func TestCleanupRunStopsOnCancel(t *testing.T) {
	store := newMemStore()
	svc := NewCleanupService(store, store, 10*time.Millisecond, time.Minute, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
