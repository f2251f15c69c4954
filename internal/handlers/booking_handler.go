package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		var req models.BookingRequest
		if !bindJSON(c, &req, false) {
			return
		}
		booking, err := b.CreateBooking(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "Booking created successfully"))
	}
}

func ProcessPayment(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		var req models.PaymentRequest
		if !bindJSON(c, &req, false) {
			return
		}
		booking, err := b.ProcessPayment(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Payment processed successfully"))
	}
}

func CancelBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		bookingID, ok := paramID(c, "id")
		if !ok {
			return
		}
		booking, err := b.CancelBooking(c.Request.Context(), id, bookingID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking cancelled successfully"))
	}
}

func MyBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		bookings, err := b.GetUserBookings(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, "Bookings retrieved successfully"))
	}
}

func UpcomingBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		bookings, err := b.GetUpcomingBookings(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, "Upcoming bookings retrieved successfully"))
	}
}

func PastBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		bookings, err := b.GetPastBookings(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(bookings, "Past bookings retrieved successfully"))
	}
}

func RoomsByBookingStatus(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := b.GetRoomsByBookingStatus(c.Request.Context(), c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rooms, "Rooms retrieved successfully"))
	}
}
