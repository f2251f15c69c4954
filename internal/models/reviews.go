package models

import (
	"time"
)

type Review struct {
	ID        uint   `gorm:"primaryKey"`
	HotelID   uint   `gorm:"uniqueIndex:idx_review_user_hotel;index;not null"`
	Hotel     Hotel  `gorm:"constraint:OnDelete:CASCADE"`
	UserID    uint   `gorm:"uniqueIndex:idx_review_user_hotel;not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReviewResponse struct {
	ReviewID  uint      `json:"reviewId"`
	HotelID   uint      `json:"hotelId"`
	HotelName string    `json:"hotelName"`
	User      UserInfo  `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *Review) Response() ReviewResponse {
	return ReviewResponse{
		ReviewID:  r.ID,
		HotelID:   r.Hotel.ID,
		HotelName: r.Hotel.Name,
		User:      r.User.Info(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func ReviewResponses(reviews []Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviews[i].Response())
	}
	return out
}
