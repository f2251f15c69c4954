package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStatusChanged is returned when a booking is no longer in the status a
// transition expects.
var ErrStatusChanged = errors.New("booking status changed")

// BookingTx is the set of booking operations available while a room is locked.
type BookingTx interface {
	GetBookingByID(ctx context.Context, id uint) (*Booking, error)
	HasConfirmedOverlap(ctx context.Context, roomID uint, checkIn, checkOut Date, excludeID uint) (bool, error)
	CreateBooking(ctx context.Context, booking *Booking) error
	SetBookingStatus(ctx context.Context, id uint, from, to BookingStatus) error
}

type BookingRepo interface {
	BookingTx
	// WithRoomLock runs fn in a transaction holding a row lock on the room.
	// It returns ErrRecordNotFound when the room does not exist.
	WithRoomLock(ctx context.Context, roomID uint, fn func(tx BookingTx, room *Room) error) error
	ListUserBookings(ctx context.Context, userID uint) ([]Booking, error)
	ListUpcomingBookings(ctx context.Context, userID uint, today Date) ([]Booking, error)
	ListPastBookings(ctx context.Context, userID uint, today Date) ([]Booking, error)
	ListRoomsByBookingStatus(ctx context.Context, status BookingStatus) ([]Room, error)
}

func (pg *PostgresRepo) WithRoomLock(ctx context.Context, roomID uint, fn func(tx BookingTx, room *Room) error) error {
	return pg.conn(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		return fn(&PostgresRepo{db: tx}, room)
	})
}

func lockRoom(tx *gorm.DB, roomID uint) (*Room, error) {
	var room Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (pg *PostgresRepo) bookingQuery(ctx context.Context) *gorm.DB {
	return pg.conn(ctx).
		Preload("Room.Hotel").
		Preload("Room.Images")
}

func (pg *PostgresRepo) GetBookingByID(ctx context.Context, id uint) (*Booking, error) {
	var booking Booking
	if err := pg.bookingQuery(ctx).First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// HasConfirmedOverlap checks the room's confirmed bookings for a shared night
// with [checkIn, checkOut). excludeID skips one booking, zero skips none.
func (pg *PostgresRepo) HasConfirmedOverlap(ctx context.Context, roomID uint, checkIn, checkOut Date, excludeID uint) (bool, error) {
	var count int64
	err := pg.conn(ctx).Model(&Booking{}).
		Where("room_id = ? AND status = ? AND id <> ?", roomID, BookingConfirmed, excludeID).
		Where("((check_in <= ? AND check_out > ?) OR (check_in < ? AND check_out >= ?) OR (check_in >= ? AND check_out <= ?))",
			checkIn, checkIn, checkOut, checkOut, checkIn, checkOut).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return count > 0, nil
}

func (pg *PostgresRepo) CreateBooking(ctx context.Context, booking *Booking) error {
	if err := pg.conn(ctx).Omit(clause.Associations).Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", translate(err))
	}
	return nil
}

// SetBookingStatus moves a booking from one status to another. It returns
// ErrStatusChanged when the booking is missing or no longer in from.
func (pg *PostgresRepo) SetBookingStatus(ctx context.Context, id uint, from, to BookingStatus) error {
	res := pg.conn(ctx).Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (pg *PostgresRepo) ListUserBookings(ctx context.Context, userID uint) ([]Booking, error) {
	var bookings []Booking
	err := pg.bookingQuery(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (pg *PostgresRepo) ListUpcomingBookings(ctx context.Context, userID uint, today Date) ([]Booking, error) {
	var bookings []Booking
	err := pg.bookingQuery(ctx).
		Where("user_id = ? AND check_in >= ? AND status <> ?", userID, today, BookingCancelled).
		Order("check_in ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming bookings: %w", err)
	}
	return bookings, nil
}

func (pg *PostgresRepo) ListPastBookings(ctx context.Context, userID uint, today Date) ([]Booking, error) {
	var bookings []Booking
	err := pg.bookingQuery(ctx).
		Where("user_id = ? AND (check_out < ? OR status = ?)", userID, today, BookingCancelled).
		Order("check_out DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list past bookings: %w", err)
	}
	return bookings, nil
}

// ListRoomsByBookingStatus returns each room with at least one booking in
// status once, most recently booked first.
func (pg *PostgresRepo) ListRoomsByBookingStatus(ctx context.Context, status BookingStatus) ([]Room, error) {
	latest := pg.conn(ctx).Model(&Booking{}).
		Select("room_id, MAX(created_at) AS last_booked").
		Where("status = ?", status).
		Group("room_id")

	var rooms []Room
	err := pg.conn(ctx).Model(&Room{}).
		Select("rooms.*").
		Joins("JOIN (?) AS lb ON lb.room_id = rooms.id", latest).
		Preload("Hotel").
		Preload("Images").
		Order("lb.last_booked DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms by booking status: %w", err)
	}
	return rooms, nil
}
