package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
)

type stubUploader struct {
	folder, publicID string
	body             string
}

func (s *stubUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.folder, s.publicID, s.body = folder, publicID, string(b)
	return "https://cdn.example.com/" + folder + "/" + publicID + ".jpg", nil
}

func strPtr(s string) *string { return &s }

func TestUpdateProfilePartial(t *testing.T) {
	store := newMemStore()
	user := store.addUser("guest@example.com", true)
	user.PhoneNumber = "0900000000"
	me := &helpers.Identity{UserID: user.ID, Email: user.Email}
	svc := NewUserService(store, nil)
	ctx := context.Background()

	dob := models.NewDate(1990, time.January, 2)
	info, err := svc.UpdateProfile(ctx, me, models.UpdateUserRequest{
		FirstName:   strPtr("  Minh "),
		Gender:      strPtr("male"),
		DateOfBirth: &dob,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if info.FirstName != "Minh" || info.LastName != "Guest" || info.Gender != models.GenderMale {
		t.Fatalf("unexpected profile: %+v", info)
	}
	if info.PhoneNumber != "0900000000" {
		t.Fatalf("untouched field changed: %q", info.PhoneNumber)
	}
	if info.DateOfBirth == nil || info.DateOfBirth.String() != "1990-01-02" {
		t.Fatalf("date of birth = %v", info.DateOfBirth)
	}

	if _, err := svc.UpdateProfile(ctx, me, models.UpdateUserRequest{Gender: strPtr("robot")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad gender err = %v", err)
	}
	if _, err := svc.GetProfile(ctx, &helpers.Identity{UserID: 9999}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user err = %v", err)
	}
}

func TestUpdateAvatar(t *testing.T) {
	store := newMemStore()
	user := store.addUser("guest@example.com", true)
	me := &helpers.Identity{UserID: user.ID, Email: user.Email}
	ctx := context.Background()

	if _, err := NewUserService(store, nil).UpdateAvatar(ctx, me, strings.NewReader("img")); !errors.Is(err, ErrFeatureDisabled) {
		t.Fatalf("no uploader err = %v", err)
	}

	up := &stubUploader{}
	info, err := NewUserService(store, up).UpdateAvatar(ctx, me, strings.NewReader("img"))
	if err != nil {
		t.Fatalf("avatar: %v", err)
	}
	if up.folder != helpers.AvatarFolder || up.body != "img" {
		t.Fatalf("upload args: %+v", up)
	}
	if !strings.HasSuffix(info.AvatarURL, up.publicID+".jpg") {
		t.Fatalf("avatar url = %q", info.AvatarURL)
	}
	stored, _ := store.GetUserByID(ctx, user.ID)
	if stored.AvatarURL != info.AvatarURL {
		t.Fatal("avatar url not persisted")
	}
}
