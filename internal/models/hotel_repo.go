package models

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HotelRepo interface {
	ListHotels(ctx context.Context) ([]HotelResponse, error)
	GetHotelByID(ctx context.Context, id uint) (*Hotel, error)
	GetRoomByID(ctx context.Context, id uint) (*Room, error)
	QueryRooms(ctx context.Context, q RoomQuery) ([]Room, int64, error)
}

func (pg *PostgresRepo) ListHotels(ctx context.Context) ([]HotelResponse, error) {
	var hotels []Hotel
	if err := pg.conn(ctx).Preload("Images").Order("id ASC").Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}

	var counts []struct {
		HotelID uint
		Total   int
	}
	err := pg.conn(ctx).Model(&Room{}).
		Select("hotel_id, COUNT(*) AS total").
		Group("hotel_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	byHotel := make(map[uint]int, len(counts))
	for _, c := range counts {
		byHotel[c.HotelID] = c.Total
	}

	out := make([]HotelResponse, 0, len(hotels))
	for i := range hotels {
		out = append(out, hotels[i].Response(byHotel[hotels[i].ID]))
	}
	return out, nil
}

func (pg *PostgresRepo) GetHotelByID(ctx context.Context, id uint) (*Hotel, error) {
	var hotel Hotel
	if err := pg.conn(ctx).First(&hotel, id).Error; err != nil {
		return nil, translate(err)
	}
	return &hotel, nil
}

func (pg *PostgresRepo) GetRoomByID(ctx context.Context, id uint) (*Room, error) {
	var room Room
	err := pg.conn(ctx).
		Preload("Hotel.Images").
		Preload("Images").
		First(&room, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// QueryRooms returns one page of rooms matching q and the total match count.
func (pg *PostgresRepo) QueryRooms(ctx context.Context, q RoomQuery) ([]Room, int64, error) {
	var total int64
	if err := applyRoomQuery(pg.conn(ctx).Model(&Room{}), q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	var rooms []Room
	err := applyRoomQuery(pg.conn(ctx).Model(&Room{}), q).
		Select("rooms.*").
		Preload("Hotel").
		Preload("Images").
		Order(clause.OrderByColumn{Column: clause.Column{Table: "rooms", Name: q.SortColumn}, Desc: q.SortDesc}).
		Order("rooms.id ASC").
		Offset(q.Page * q.Size).
		Limit(q.Size).
		Find(&rooms).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query rooms: %w", err)
	}
	return rooms, total, nil
}

func applyRoomQuery(tx *gorm.DB, q RoomQuery) *gorm.DB {
	tx = tx.Joins("JOIN hotels ON hotels.id = rooms.hotel_id")
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		tx = tx.Where("(LOWER(rooms.room_type) LIKE ? OR LOWER(rooms.description) LIKE ? OR LOWER(hotels.name) LIKE ?)", like, like, like)
	}
	if q.HotelID != nil {
		tx = tx.Where("rooms.hotel_id = ?", *q.HotelID)
	}
	if city := strings.TrimSpace(q.City); city != "" {
		tx = tx.Where("LOWER(hotels.city) = LOWER(?)", city)
	}
	if country := strings.TrimSpace(q.Country); country != "" {
		tx = tx.Where("LOWER(hotels.country) = LOWER(?)", country)
	}
	if rt := strings.TrimSpace(q.RoomType); rt != "" {
		tx = tx.Where("LOWER(rooms.room_type) LIKE ?", "%"+strings.ToLower(rt)+"%")
	}
	if q.MinPrice != nil {
		tx = tx.Where("rooms.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("rooms.price <= ?", *q.MaxPrice)
	}
	if q.MinCapacity != nil {
		tx = tx.Where("rooms.capacity >= ?", *q.MinCapacity)
	}
	if q.MaxCapacity != nil {
		tx = tx.Where("rooms.capacity <= ?", *q.MaxCapacity)
	}
	return tx
}
