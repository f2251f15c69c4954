package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID            uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"index;not null"`
	User          User            `gorm:"constraint:OnDelete:CASCADE"`
	RoomID        uint            `gorm:"index:idx_booking_room_status;not null"`
	Room          Room            `gorm:"constraint:OnDelete:CASCADE"`
	CheckIn       Date            `gorm:"type:date;not null"`
	CheckOut      Date            `gorm:"type:date;not null"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status        BookingStatus   `gorm:"size:20;index:idx_booking_room_status;not null;default:PENDING"`
	AdultsCount   int             `gorm:"not null;default:1"`
	ChildrenCount int             `gorm:"not null;default:0"`
	InfantsCount  int             `gorm:"not null;default:0"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

type BookingRoomInfo struct {
	RoomID       uint            `json:"roomId"`
	RoomType     string          `json:"roomType"`
	Price        decimal.Decimal `json:"price"`
	HotelID      uint            `json:"hotelId"`
	HotelName    string          `json:"hotelName"`
	HotelCity    string          `json:"hotelCity"`
	HotelAddress string          `json:"hotelAddress"`
	RoomImageURL string          `json:"roomImageUrl"`
}

type BookingResponse struct {
	BookingID     uint            `json:"bookingId"`
	Room          BookingRoomInfo `json:"room"`
	CheckIn       Date            `json:"checkIn"`
	CheckOut      Date            `json:"checkOut"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Status        BookingStatus   `json:"status"`
	AdultsCount   int             `json:"adultsCount"`
	ChildrenCount int             `json:"childrenCount"`
	InfantsCount  int             `json:"infantsCount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (b *Booking) Response() BookingResponse {
	return BookingResponse{
		BookingID: b.ID,
		Room: BookingRoomInfo{
			RoomID:       b.Room.ID,
			RoomType:     b.Room.RoomType,
			Price:        b.Room.Price,
			HotelID:      b.Room.Hotel.ID,
			HotelName:    b.Room.Hotel.Name,
			HotelCity:    b.Room.Hotel.City,
			HotelAddress: b.Room.Hotel.Address,
			RoomImageURL: firstOrEmpty(roomImageURLs(b.Room.Images)),
		},
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		AdultsCount:   b.AdultsCount,
		ChildrenCount: b.ChildrenCount,
		InfantsCount:  b.InfantsCount,
		CreatedAt:     b.CreatedAt,
	}
}

func BookingResponses(bookings []Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookings[i].Response())
	}
	return out
}
