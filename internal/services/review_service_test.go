package services

import (
	"context"
	"errors"
	"testing"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
)

func TestReviewLifecycle(t *testing.T) {
	store := newMemStore()
	hotel := store.addHotel("Riverside", "Hanoi")
	otherHotel := store.addHotel("Seaview", "Da Nang")
	room := store.addRoom(hotel, "Deluxe", 650000, 2)
	user := store.addUser("guest@example.com", true)
	stranger := store.addUser("stranger@example.com", true)
	me := &helpers.Identity{UserID: user.ID, Email: user.Email, Role: models.DefaultRoleName}
	them := &helpers.Identity{UserID: stranger.ID, Email: stranger.Email, Role: models.DefaultRoleName}

	svc := NewReviewService(store, store)
	ctx := context.Background()

	if _, err := svc.GetMyReviewByRoom(ctx, me, room.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("missing review err = %v", err)
	}

	created, err := svc.CreateReview(ctx, me, models.ReviewRequest{HotelID: hotel.ID, Rating: 4, Comment: " Lovely stay "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Rating != 4 || created.Comment != "Lovely stay" || created.HotelName != "Riverside" {
		t.Fatalf("unexpected review: %+v", created)
	}
	if created.User.Email != "guest@example.com" {
		t.Fatalf("review author = %+v", created.User)
	}

	_, err = svc.CreateReview(ctx, me, models.ReviewRequest{HotelID: hotel.ID, Rating: 5})
	if !errors.Is(err, ErrDuplicateReview) {
		t.Fatalf("second review err = %v", err)
	}
	_, err = svc.CreateReview(ctx, me, models.ReviewRequest{HotelID: 9999, Rating: 5})
	if !errors.Is(err, ErrHotelNotFound) {
		t.Fatalf("unknown hotel err = %v", err)
	}

	_, err = svc.UpdateReview(ctx, them, created.ReviewID, models.ReviewRequest{HotelID: hotel.ID, Rating: 1})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign update err = %v", err)
	}
	_, err = svc.UpdateReview(ctx, me, created.ReviewID, models.ReviewRequest{HotelID: otherHotel.ID, Rating: 1})
	if !errors.Is(err, ErrHotelMismatch) {
		t.Fatalf("hotel mismatch err = %v", err)
	}
	_, err = svc.UpdateReview(ctx, me, 9999, models.ReviewRequest{HotelID: hotel.ID, Rating: 1})
	if !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("missing review err = %v", err)
	}

	updated, err := svc.UpdateReview(ctx, me, created.ReviewID, models.ReviewRequest{HotelID: hotel.ID, Rating: 2, Comment: "Noisy"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 2 || updated.Comment != "Noisy" {
		t.Fatalf("update not applied: %+v", updated)
	}

	mine, err := svc.GetMyReviewByRoom(ctx, me, room.ID)
	if err != nil {
		t.Fatalf("my review: %v", err)
	}
	if mine.ReviewID != created.ReviewID {
		t.Fatalf("my review id = %d", mine.ReviewID)
	}

	byRoom, err := svc.GetReviewsByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("by room: %v", err)
	}
	if len(byRoom) != 1 {
		t.Fatalf("reviews by room = %d, want 1", len(byRoom))
	}
	if _, err := svc.GetReviewsByRoom(ctx, 9999); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("unknown room err = %v", err)
	}

	empty, err := svc.GetReviewsByHotel(ctx, otherHotel.ID)
	if err != nil {
		t.Fatalf("by hotel: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", empty)
	}
}
