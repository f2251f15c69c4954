package services

import "errors"

var (
	// 400
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrOtpInvalid         = errors.New("invalid OTP code")
	ErrOtpExpired         = errors.New("OTP code has expired")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrAccountNotVerified = errors.New("account is not verified")
	ErrAlreadyVerified    = errors.New("account is already verified")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrInvalidDates       = errors.New("invalid booking dates")
	ErrRoomUnavailable    = errors.New("room is not available for the selected dates")
	ErrBookingNotPending  = errors.New("booking is not pending payment")
	ErrInvalidCard        = errors.New("invalid card details")
	ErrCannotCancel       = errors.New("booking cannot be cancelled")
	ErrDuplicateReview    = errors.New("you have already reviewed this hotel")
	ErrHotelMismatch      = errors.New("review does not belong to this hotel")

	// 401
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("authentication required")

	// 403
	ErrForbidden = errors.New("you do not have access to this resource")

	// 404
	ErrNotFound        = errors.New("not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrHotelNotFound   = errors.New("hotel not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrReviewNotFound  = errors.New("review not found")

	// 429
	ErrTooManyRequests = errors.New("please wait before requesting another code")

	// 503
	ErrFeatureDisabled = errors.New("feature is not configured")
)
