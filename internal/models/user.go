package models

import (
	"time"
)

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"roleId"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"userId"`
	FirstName    string    `gorm:"size:255;not null" json:"firstName"`
	LastName     string    `gorm:"size:255;not null" json:"lastName"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	PhoneNumber  string    `gorm:"size:20" json:"phoneNumber"`
	DateOfBirth  *Date     `json:"dateOfBirth"`
	Gender       Gender    `gorm:"size:10" json:"gender"`
	AvatarURL    string    `gorm:"size:512" json:"avatarUrl"`
	IsVerified   bool      `gorm:"not null;default:false;index" json:"isVerified"`
	RoleID       uint      `json:"-"`
	Role         Role      `json:"-"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserInfo is the public projection of a user.
type UserInfo struct {
	UserID      uint   `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth *Date  `json:"dateOfBirth"`
	Gender      Gender `json:"gender"`
	AvatarURL   string `json:"avatarUrl"`
	RoleName    string `json:"roleName"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		UserID:      u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		AvatarURL:   u.AvatarURL,
		RoleName:    u.Role.Name,
	}
}

type OtpVerification struct {
	ID        uint       `gorm:"primaryKey"`
	Email     string     `gorm:"size:255;index:idx_otp_lookup;not null"`
	OtpCode   string     `gorm:"size:6;index:idx_otp_lookup;not null"`
	Purpose   OtpPurpose `gorm:"size:20;not null"`
	ExpiresAt time.Time  `gorm:"index;not null"`
	IsUsed    bool       `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (o *OtpVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"size:1024;uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"not null"`
	IsRevoked bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
