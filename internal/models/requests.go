package models

import (
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required,min=1,max=255"`
	LastName    string `json:"lastName" binding:"required,min=1,max=255"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required,numeric,min=10,max=20"`
	Password    string `json:"password" binding:"required,min=6"`
	DateOfBirth *Date  `json:"dateOfBirth" binding:"required,pastdate"`
	Gender      string `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
}

type OtpVerificationRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OtpCode string `json:"otpCode" binding:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	OtpCode         string `json:"otpCode" binding:"required,len=6,numeric"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	Message      string    `json:"message"`
	User         *UserInfo `json:"user"`
}

type BookingRequest struct {
	RoomID        uint  `json:"roomId" binding:"required"`
	CheckIn       *Date `json:"checkIn" binding:"required"`
	CheckOut      *Date `json:"checkOut" binding:"required"`
	AdultsCount   *int  `json:"adultsCount" binding:"omitempty,min=1"`
	ChildrenCount *int  `json:"childrenCount" binding:"omitempty,min=0"`
	InfantsCount  *int  `json:"infantsCount" binding:"omitempty,min=0"`
}

type PaymentRequest struct {
	BookingID      uint   `json:"bookingId" binding:"required"`
	CardNumber     string `json:"cardNumber" binding:"required"`
	CardHolderName string `json:"cardHolderName" binding:"required"`
	ExpiryDate     string `json:"expiryDate" binding:"required"`
	CVV            string `json:"cvv" binding:"required"`
	PaymentMethod  string `json:"paymentMethod"`
}

type ReviewRequest struct {
	HotelID uint   `json:"hotelId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type RoomSearchRequest struct {
	Keyword string `json:"keyword"`
	City    string `json:"city"`
	Country string `json:"country"`
	HotelID *uint  `json:"hotelId"`
	Page    *int   `json:"page" binding:"omitempty,min=0,max=10000"`
	Size    *int   `json:"size" binding:"omitempty,min=1,max=100"`
}

type RoomFilterRequest struct {
	HotelID       *uint            `json:"hotelId"`
	City          string           `json:"city"`
	Country       string           `json:"country"`
	RoomType      string           `json:"roomType"`
	MinPrice      *decimal.Decimal `json:"minPrice"`
	MaxPrice      *decimal.Decimal `json:"maxPrice"`
	MinCapacity   *int             `json:"minCapacity" binding:"omitempty,min=0"`
	MaxCapacity   *int             `json:"maxCapacity" binding:"omitempty,min=0"`
	SortBy        string           `json:"sortBy"`
	SortDirection string           `json:"sortDirection"`
	Page          *int             `json:"page" binding:"omitempty,min=0,max=10000"`
	Size          *int             `json:"size" binding:"omitempty,min=1,max=100"`
}

// UpdateUserRequest carries a partial profile update; nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName   *string `json:"firstName" binding:"omitempty,min=1,max=255"`
	LastName    *string `json:"lastName" binding:"omitempty,min=1,max=255"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,numeric,min=10,max=20"`
	DateOfBirth *Date   `json:"dateOfBirth" binding:"omitempty,pastdate"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	AvatarURL   *string `json:"avatarUrl" binding:"omitempty,url"`
}

// RoomQuery is the normalised form of a search or filter request.
type RoomQuery struct {
	Keyword     string
	HotelID     *uint
	City        string
	Country     string
	RoomType    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinCapacity *int
	MaxCapacity *int
	SortColumn  string
	SortDesc    bool
	Page        int
	Size        int
}
