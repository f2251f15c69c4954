package models

import (
	"context"
	"fmt"
	"time"
)

type OtpRepo interface {
	CreateOtp(ctx context.Context, otp *OtpVerification) error
	FindUnusedOtp(ctx context.Context, email, code string, purpose OtpPurpose) (*OtpVerification, error)
	MarkOtpUsed(ctx context.Context, id uint) error
	DeleteExpiredOtps(ctx context.Context, now time.Time) (int64, error)
}

type RefreshTokenRepo interface {
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
}

func (pg *PostgresRepo) CreateOtp(ctx context.Context, otp *OtpVerification) error {
	if err := pg.conn(ctx).Create(otp).Error; err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

// FindUnusedOtp returns the newest unused code matching email and purpose.
func (pg *PostgresRepo) FindUnusedOtp(ctx context.Context, email, code string, purpose OtpPurpose) (*OtpVerification, error) {
	var otp OtpVerification
	err := pg.conn(ctx).
		Where("LOWER(email) = LOWER(?) AND otp_code = ? AND purpose = ? AND is_used = ?", email, code, purpose, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, translate(err)
	}
	return &otp, nil
}

// MarkOtpUsed claims an unused code. It returns ErrRecordNotFound when the
// code is missing or was already used.
func (pg *PostgresRepo) MarkOtpUsed(ctx context.Context, id uint) error {
	res := pg.conn(ctx).Model(&OtpVerification{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark otp used: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (pg *PostgresRepo) DeleteExpiredOtps(ctx context.Context, now time.Time) (int64, error) {
	res := pg.conn(ctx).Where("expires_at < ?", now).Delete(&OtpVerification{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired otps: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (pg *PostgresRepo) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	if err := pg.conn(ctx).Omit("User").Create(token).Error; err != nil {
		return fmt.Errorf("failed to save refresh token: %w", translate(err))
	}
	return nil
}

func (pg *PostgresRepo) GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	var rt RefreshToken
	if err := pg.conn(ctx).Preload("User").Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}
