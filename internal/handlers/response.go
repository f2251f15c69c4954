package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/middleware"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrInvalidInput, http.StatusBadRequest},
	{services.ErrEmailTaken, http.StatusBadRequest},
	{services.ErrOtpInvalid, http.StatusBadRequest},
	{services.ErrOtpExpired, http.StatusBadRequest},
	{services.ErrPasswordMismatch, http.StatusBadRequest},
	{services.ErrAccountNotVerified, http.StatusBadRequest},
	{services.ErrAlreadyVerified, http.StatusBadRequest},
	{services.ErrInvalidRefresh, http.StatusBadRequest},
	{services.ErrInvalidDates, http.StatusBadRequest},
	{services.ErrRoomUnavailable, http.StatusBadRequest},
	{services.ErrBookingNotPending, http.StatusBadRequest},
	{services.ErrInvalidCard, http.StatusBadRequest},
	{services.ErrCannotCancel, http.StatusBadRequest},
	{services.ErrDuplicateReview, http.StatusBadRequest},
	{services.ErrHotelMismatch, http.StatusBadRequest},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrUnauthorized, http.StatusUnauthorized},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrNotFound, http.StatusNotFound},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrRoomNotFound, http.StatusNotFound},
	{services.ErrHotelNotFound, http.StatusNotFound},
	{services.ErrBookingNotFound, http.StatusNotFound},
	{services.ErrReviewNotFound, http.StatusNotFound},
	{services.ErrTooManyRequests, http.StatusTooManyRequests},
	{services.ErrFeatureDisabled, http.StatusServiceUnavailable},
}

// statusFor maps a service error to its HTTP status; unknown errors are 500.
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, models.ErrorResponse("An unexpected error occurred"))
		return
	}
	c.JSON(status, models.ErrorResponse(err.Error()))
}

// bindJSON decodes the body into req and writes a 400 on failure. When
// allowEmpty is set a missing body leaves req at its zero value.
func bindJSON(c *gin.Context, req interface{}, allowEmpty bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if allowEmpty && errors.Is(err, io.EOF) {
		return true
	}
	if fields, ok := helpers.ValidationErrors(err); ok {
		c.JSON(http.StatusBadRequest, models.ValidationResponse(fields))
		return false
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
	return false
}

func identity(c *gin.Context) (*helpers.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
		return nil, false
	}
	return id, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(helpers.StringTrim(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid "+name))
		return 0, false
	}
	return uint(id), true
}
