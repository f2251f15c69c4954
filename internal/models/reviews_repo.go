package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) error
	UpdateReview(ctx context.Context, review *Review) error
	GetReviewByID(ctx context.Context, id uint) (*Review, error)
	GetUserHotelReview(ctx context.Context, userID, hotelID uint) (*Review, error)
	ListReviewsByHotel(ctx context.Context, hotelID uint) ([]Review, error)
}

func (pg *PostgresRepo) reviewQuery(ctx context.Context) *gorm.DB {
	return pg.conn(ctx).
		Preload("Hotel").
		Preload("User.Role")
}

// CreateReview returns ErrDuplicateKey when the user already reviewed the hotel.
func (pg *PostgresRepo) CreateReview(ctx context.Context, review *Review) error {
	if err := pg.conn(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", translate(err))
	}
	return nil
}

func (pg *PostgresRepo) UpdateReview(ctx context.Context, review *Review) error {
	err := pg.conn(ctx).Model(&Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":  review.Rating,
			"comment": review.Comment,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

func (pg *PostgresRepo) GetReviewByID(ctx context.Context, id uint) (*Review, error) {
	var review Review
	if err := pg.reviewQuery(ctx).First(&review, id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (pg *PostgresRepo) GetUserHotelReview(ctx context.Context, userID, hotelID uint) (*Review, error) {
	var review Review
	err := pg.reviewQuery(ctx).
		Where("user_id = ? AND hotel_id = ?", userID, hotelID).
		First(&review).Error
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (pg *PostgresRepo) ListReviewsByHotel(ctx context.Context, hotelID uint) ([]Review, error) {
	var reviews []Review
	err := pg.reviewQuery(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
