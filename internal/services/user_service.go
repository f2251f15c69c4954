package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
)

// AvatarUploader stores an image and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

type UserService struct {
	userRepo models.UserRepo
	uploader AvatarUploader
}

func NewUserService(userRepo models.UserRepo, uploader AvatarUploader) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (us *UserService) current(ctx context.Context, identity *helpers.Identity) (*models.User, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	user, err := us.userRepo.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (us *UserService) GetProfile(ctx context.Context, identity *helpers.Identity) (*models.UserInfo, error) {
	user, err := us.current(ctx, identity)
	if err != nil {
		return nil, err
	}
	info := user.Info()
	return &info, nil
}

// UpdateProfile applies the non-nil fields of req.
func (us *UserService) UpdateProfile(ctx context.Context, identity *helpers.Identity, req models.UpdateUserRequest) (*models.UserInfo, error) {
	user, err := us.current(ctx, identity)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = helpers.StringTrim(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = helpers.StringTrim(*req.LastName)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		dob := *req.DateOfBirth
		user.DateOfBirth = &dob
	}
	if req.Gender != nil {
		gender, err := models.ParseGender(*req.Gender)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		user.Gender = gender
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := us.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	info := user.Info()
	return &info, nil
}

func (us *UserService) UpdateAvatar(ctx context.Context, identity *helpers.Identity, file io.Reader) (*models.UserInfo, error) {
	if us.uploader == nil {
		return nil, ErrFeatureDisabled
	}
	user, err := us.current(ctx, identity)
	if err != nil {
		return nil, err
	}
	url, err := us.uploader.Upload(ctx, file, helpers.AvatarFolder, fmt.Sprintf("user_%d", user.ID))
	if err != nil {
		return nil, err
	}
	user.AvatarURL = url
	if err := us.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	info := user.Info()
	return &info, nil
}
