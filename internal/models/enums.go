package models

import (
	"fmt"
	"strings"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid booking status %q", s)
	}
	return status, nil
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("gender must be MALE, FEMALE, or OTHER")
	}
	return g, nil
}

// OtpPurpose keeps registration and password reset codes apart.
type OtpPurpose string

const (
	OtpRegister      OtpPurpose = "REGISTER"
	OtpResetPassword OtpPurpose = "RESET_PASSWORD"
)

const DefaultRoleName = "CUSTOMER"
