package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/metrics"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/shopspring/decimal"
)

type BookingService struct {
	bookings models.BookingRepo
	logger   *slog.Logger
	now      func() time.Time
}

func NewBookingService(bookings models.BookingRepo, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		logger:   logger,
		now:      time.Now,
	}
}

func (bs *BookingService) today() models.Date {
	return models.DateOf(bs.now())
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// CreateBooking reserves a room as PENDING after checking the dates against
// confirmed bookings. The check and insert run under a lock on the room row.
func (bs *BookingService) CreateBooking(ctx context.Context, identity *helpers.Identity, req models.BookingRequest) (*models.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	if req.CheckIn == nil || req.CheckOut == nil {
		return nil, fmt.Errorf("%w: check-in and check-out dates are required", ErrInvalidDates)
	}
	checkIn, checkOut := *req.CheckIn, *req.CheckOut
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrInvalidDates)
	}
	if checkIn.Before(bs.today()) {
		return nil, fmt.Errorf("%w: check-in date cannot be in the past", ErrInvalidDates)
	}

	booking := &models.Booking{
		UserID:        identity.UserID,
		RoomID:        req.RoomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Status:        models.BookingPending,
		AdultsCount:   intOr(req.AdultsCount, 1),
		ChildrenCount: intOr(req.ChildrenCount, 0),
		InfantsCount:  intOr(req.InfantsCount, 0),
	}

	err := bs.bookings.WithRoomLock(ctx, req.RoomID, func(tx models.BookingTx, room *models.Room) error {
		taken, err := tx.HasConfirmedOverlap(ctx, room.ID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrRoomUnavailable
		}
		nights := checkIn.NightsUntil(checkOut)
		booking.TotalPrice = room.Price.Mul(decimal.NewFromInt(int64(nights)))
		return tx.CreateBooking(ctx, booking)
	})
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		if errors.Is(err, ErrRoomUnavailable) {
			metrics.BookingEvents.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	metrics.BookingEvents.WithLabelValues("created").Inc()
	bs.logger.Info("booking created", "booking_id", booking.ID, "room_id", booking.RoomID, "user_id", booking.UserID)
	return bs.reload(ctx, booking.ID)
}

// ProcessPayment validates the (simulated) card and moves a PENDING booking
// to CONFIRMED, re-checking for confirmed overlaps under the room lock.
func (bs *BookingService) ProcessPayment(ctx context.Context, identity *helpers.Identity, req models.PaymentRequest) (*models.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	booking, err := bs.ownedBooking(ctx, identity, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, ErrBookingNotPending
	}
	if err := validateCard(req); err != nil {
		return nil, err
	}

	err = bs.bookings.WithRoomLock(ctx, booking.RoomID, func(tx models.BookingTx, room *models.Room) error {
		current, err := tx.GetBookingByID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if current.Status != models.BookingPending {
			return ErrBookingNotPending
		}
		taken, err := tx.HasConfirmedOverlap(ctx, room.ID, current.CheckIn, current.CheckOut, current.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrRoomUnavailable
		}
		return tx.SetBookingStatus(ctx, current.ID, models.BookingPending, models.BookingConfirmed)
	})
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, models.ErrStatusChanged) {
			return nil, ErrBookingNotPending
		}
		if errors.Is(err, ErrRoomUnavailable) {
			metrics.BookingEvents.WithLabelValues("conflict").Inc()
		}
		return nil, err
	}

	metrics.BookingEvents.WithLabelValues("confirmed").Inc()
	bs.logger.Info("booking confirmed", "booking_id", booking.ID, "user_id", identity.UserID)
	return bs.reload(ctx, booking.ID)
}

func validateCard(req models.PaymentRequest) error {
	card := strings.ReplaceAll(strings.ReplaceAll(req.CardNumber, " ", ""), "-", "")
	if !helpers.IsDigits(card) || len(card) < 13 || len(card) > 19 {
		return fmt.Errorf("%w: card number must be 13 to 19 digits", ErrInvalidCard)
	}
	cvv := strings.TrimSpace(req.CVV)
	if !helpers.IsDigits(cvv) || len(cvv) < 3 || len(cvv) > 4 {
		return fmt.Errorf("%w: CVV must be 3 or 4 digits", ErrInvalidCard)
	}
	return nil
}

// CancelBooking cancels an upcoming booking. The status is re-read under the
// room lock so a payment confirming the same booking cannot interleave.
func (bs *BookingService) CancelBooking(ctx context.Context, identity *helpers.Identity, bookingID uint) (*models.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	booking, err := bs.ownedBooking(ctx, identity, bookingID)
	if err != nil {
		return nil, err
	}

	err = bs.bookings.WithRoomLock(ctx, booking.RoomID, func(tx models.BookingTx, _ *models.Room) error {
		current, err := tx.GetBookingByID(ctx, booking.ID)
		if err != nil {
			return err
		}
		if current.Status == models.BookingCancelled {
			return fmt.Errorf("%w: booking is already cancelled", ErrCannotCancel)
		}
		if current.CheckIn.Before(bs.today()) {
			return fmt.Errorf("%w: check-in date has already passed", ErrCannotCancel)
		}
		return tx.SetBookingStatus(ctx, current.ID, current.Status, models.BookingCancelled)
	})
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		if errors.Is(err, models.ErrStatusChanged) {
			return nil, ErrCannotCancel
		}
		return nil, err
	}

	metrics.BookingEvents.WithLabelValues("cancelled").Inc()
	bs.logger.Info("booking cancelled", "booking_id", booking.ID, "user_id", identity.UserID)
	return bs.reload(ctx, booking.ID)
}

func (bs *BookingService) GetUserBookings(ctx context.Context, identity *helpers.Identity) ([]models.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	bookings, err := bs.bookings.ListUserBookings(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return models.BookingResponses(bookings), nil
}

func (bs *BookingService) GetUpcomingBookings(ctx context.Context, identity *helpers.Identity) ([]models.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	bookings, err := bs.bookings.ListUpcomingBookings(ctx, identity.UserID, bs.today())
	if err != nil {
		return nil, err
	}
	return models.BookingResponses(bookings), nil
}

func (bs *BookingService) GetPastBookings(ctx context.Context, identity *helpers.Identity) ([]models.BookingResponse, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	bookings, err := bs.bookings.ListPastBookings(ctx, identity.UserID, bs.today())
	if err != nil {
		return nil, err
	}
	return models.BookingResponses(bookings), nil
}

// GetRoomsByBookingStatus lists the distinct rooms with a booking in status.
func (bs *BookingService) GetRoomsByBookingStatus(ctx context.Context, status string) ([]models.RoomResponse, error) {
	parsed, err := models.ParseBookingStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	rooms, err := bs.bookings.ListRoomsByBookingStatus(ctx, parsed)
	if err != nil {
		return nil, err
	}
	out := make([]models.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, rooms[i].Response())
	}
	return out, nil
}

func (bs *BookingService) ownedBooking(ctx context.Context, identity *helpers.Identity, bookingID uint) (*models.Booking, error) {
	booking, err := bs.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !identity.IsOwner(booking.UserID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (bs *BookingService) reload(ctx context.Context, bookingID uint) (*models.BookingResponse, error) {
	booking, err := bs.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	res := booking.Response()
	return &res, nil
}
