package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedRoom(roomType, price string, capacity int, description string, images ...string) Room {
	room := Room{
		RoomType:    roomType,
		Price:       decimal.RequireFromString(price),
		Capacity:    capacity,
		Description: description,
	}
	for _, url := range images {
		room.Images = append(room.Images, RoomImage{ImageURL: url})
	}
	return room
}

func seedHotels() []Hotel {
	return []Hotel{
		{
			Name:        "Saigon Riverside Hotel",
			Address:     "19 Ton Duc Thang, District 1",
			City:        "Ho Chi Minh",
			Country:     "Vietnam",
			Description: "Riverside hotel a short walk from Nguyen Hue walking street.",
			Images: []HotelImage{
				{ImageURL: "https://images.unsplash.com/photo-1566073771259-6a8506099945"},
				{ImageURL: "https://images.unsplash.com/photo-1582719478250-c89cae4dc85b"},
			},
			Rooms: []Room{
				seedRoom("Standard Room", "650000.00", 2, "Queen bed with city view.",
					"https://images.unsplash.com/photo-1611892440504-42a792e24d32"),
				seedRoom("Deluxe Room", "1200000.00", 3, "Spacious room with river view and bathtub.",
					"https://images.unsplash.com/photo-1590490360182-c33d57733427"),
				seedRoom("Family Suite", "2100000.00", 5, "Two bedrooms and a living area.",
					"https://images.unsplash.com/photo-1578683010236-d716f9a3f461"),
			},
		},
		{
			Name:        "Hanoi Old Quarter Boutique",
			Address:     "42 Hang Be, Hoan Kiem",
			City:        "Hanoi",
			Country:     "Vietnam",
			Description: "Boutique hotel in the heart of the Old Quarter.",
			Images: []HotelImage{
				{ImageURL: "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa"},
			},
			Rooms: []Room{
				seedRoom("Standard Room", "550000.00", 2, "Cosy double room.",
					"https://images.unsplash.com/photo-1631049307264-da0ec9d70304"),
				seedRoom("Deluxe Room", "950000.00", 2, "Balcony overlooking the street.",
					"https://images.unsplash.com/photo-1618773928121-c32242e63f39"),
			},
		},
		{
			Name:        "Da Nang Beach Resort",
			Address:     "255 Vo Nguyen Giap, Son Tra",
			City:        "Da Nang",
			Country:     "Vietnam",
			Description: "Beachfront resort with an infinity pool.",
			Images: []HotelImage{
				{ImageURL: "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4"},
			},
			Rooms: []Room{
				seedRoom("Ocean View Room", "1500000.00", 2, "King bed facing the sea.",
					"https://images.unsplash.com/photo-1582719508461-905c673771fd"),
				seedRoom("Villa", "4500000.00", 6, "Private villa with pool.",
					"https://images.unsplash.com/photo-1602002418082-a4443e081dd1"),
			},
		},
	}
}

// Seed inserts sample hotels when the hotels table is empty.
func (pg *PostgresRepo) Seed(ctx context.Context) (bool, error) {
	var count int64
	if err := pg.conn(ctx).Model(&Hotel{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count hotels: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	err := pg.conn(ctx).Transaction(func(tx *gorm.DB) error {
		hotels := seedHotels()
		return tx.Create(&hotels).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed hotels: %w", err)
	}
	return true, nil
}
