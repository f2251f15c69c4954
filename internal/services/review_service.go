package services

import (
	"context"
	"errors"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
)

type ReviewService struct {
	reviews models.ReviewsRepo
	hotels  models.HotelRepo
}

func NewReviewService(reviews models.ReviewsRepo, hotels models.HotelRepo) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		hotels:  hotels,
	}
}

// CreateReview records the caller's single review for a hotel.
func (rs *ReviewService) CreateReview(ctx context.Context, identity *helpers.Identity, req models.ReviewRequest) (*models.ReviewResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	if _, err := rs.hotels.GetHotelByID(ctx, req.HotelID); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}

	_, err := rs.reviews.GetUserHotelReview(ctx, identity.UserID, req.HotelID)
	switch {
	case err == nil:
		return nil, ErrDuplicateReview
	case !errors.Is(err, models.ErrRecordNotFound):
		return nil, err
	}

	review := &models.Review{
		HotelID: req.HotelID,
		UserID:  identity.UserID,
		Rating:  req.Rating,
		Comment: helpers.StringTrim(req.Comment),
	}
	if err := rs.reviews.CreateReview(ctx, review); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return rs.reload(ctx, review.ID)
}

func (rs *ReviewService) UpdateReview(ctx context.Context, identity *helpers.Identity, reviewID uint, req models.ReviewRequest) (*models.ReviewResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	review, err := rs.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if !identity.IsOwner(review.UserID) {
		return nil, ErrForbidden
	}
	if review.HotelID != req.HotelID {
		return nil, ErrHotelMismatch
	}

	review.Rating = req.Rating
	review.Comment = helpers.StringTrim(req.Comment)
	if err := rs.reviews.UpdateReview(ctx, review); err != nil {
		return nil, err
	}
	return rs.reload(ctx, review.ID)
}

func (rs *ReviewService) GetReviewsByHotel(ctx context.Context, hotelID uint) ([]models.ReviewResponse, error) {
	reviews, err := rs.reviews.ListReviewsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return models.ReviewResponses(reviews), nil
}

// GetReviewsByRoom lists the reviews of the hotel the room belongs to.
func (rs *ReviewService) GetReviewsByRoom(ctx context.Context, roomID uint) ([]models.ReviewResponse, error) {
	room, err := rs.room(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return rs.GetReviewsByHotel(ctx, room.HotelID)
}

func (rs *ReviewService) GetMyReviewByRoom(ctx context.Context, identity *helpers.Identity, roomID uint) (*models.ReviewResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	room, err := rs.room(ctx, roomID)
	if err != nil {
		return nil, err
	}
	review, err := rs.reviews.GetUserHotelReview(ctx, identity.UserID, room.HotelID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	res := review.Response()
	return &res, nil
}

func (rs *ReviewService) room(ctx context.Context, roomID uint) (*models.Room, error) {
	room, err := rs.hotels.GetRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (rs *ReviewService) reload(ctx context.Context, reviewID uint) (*models.ReviewResponse, error) {
	review, err := rs.reviews.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	res := review.Response()
	return &res, nil
}
