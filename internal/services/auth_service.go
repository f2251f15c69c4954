package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/notify"
)

// Throttle grants a key at most once per ttl.
type Throttle interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type AuthConfig struct {
	OtpTTL         time.Duration
	ResendCooldown time.Duration
}

type AuthService struct {
	users    models.UserRepo
	otps     models.OtpRepo
	tokens   models.RefreshTokenRepo
	issuer   *helpers.TokenIssuer
	notifier notify.Notifier
	throttle Throttle
	cfg      AuthConfig
	logger   *slog.Logger
	now      func() time.Time
}

func NewAuthService(
	users models.UserRepo,
	otps models.OtpRepo,
	tokens models.RefreshTokenRepo,
	issuer *helpers.TokenIssuer,
	notifier notify.Notifier,
	throttle Throttle,
	cfg AuthConfig,
	logger *slog.Logger,
) *AuthService {
	if cfg.OtpTTL <= 0 {
		cfg.OtpTTL = 10 * time.Minute
	}
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = time.Minute
	}
	return &AuthService{
		users:    users,
		otps:     otps,
		tokens:   tokens,
		issuer:   issuer,
		notifier: notifier,
		throttle: throttle,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserInfo, error) {
	email := helpers.NormalizeEmail(req.Email)
	gender, err := models.ParseGender(req.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := as.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	role, err := as.users.GetOrCreateRole(ctx, models.DefaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default role: %w", err)
	}

	user := &models.User{
		FirstName:    helpers.StringTrim(req.FirstName),
		LastName:     helpers.StringTrim(req.LastName),
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  req.PhoneNumber,
		DateOfBirth:  req.DateOfBirth,
		Gender:       gender,
		IsVerified:   false,
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := as.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// start the resend cooldown with the first code
	as.acquire(ctx, "otp:"+string(models.OtpRegister)+":"+email)
	if err := as.issueOtp(ctx, email, models.OtpRegister); err != nil {
		return nil, err
	}

	info := user.Info()
	return &info, nil
}

func (as *AuthService) VerifyOtp(ctx context.Context, req models.OtpVerificationRequest) (*models.AuthResponse, error) {
	email := helpers.NormalizeEmail(req.Email)
	otp, err := as.consumeOtp(ctx, email, req.OtpCode, models.OtpRegister)
	if err != nil {
		return nil, err
	}

	user, err := as.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := as.claimOtp(ctx, otp.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true
	if err := as.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return as.issueTokens(ctx, user, "Email verified successfully")
}

// ResendOtp issues a fresh registration code to an account still awaiting verification.
func (as *AuthService) ResendOtp(ctx context.Context, req models.ForgotPasswordRequest) error {
	email := helpers.NormalizeEmail(req.Email)
	user, err := as.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}
	if !as.acquire(ctx, "otp:"+string(models.OtpRegister)+":"+email) {
		return ErrTooManyRequests
	}
	return as.issueOtp(ctx, email, models.OtpRegister)
}

func (as *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := as.users.GetUserByEmail(ctx, helpers.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}
	return as.issueTokens(ctx, user, "Login successful")
}

// ForgotPassword sends a reset code. Unknown addresses get the same outcome,
// cooldown included, as known ones.
func (as *AuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	email := helpers.NormalizeEmail(req.Email)
	if !as.acquire(ctx, "otp:"+string(models.OtpResetPassword)+":"+email) {
		return ErrTooManyRequests
	}
	user, err := as.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			as.logger.Debug("password reset requested for unknown email")
			return nil
		}
		return err
	}
	if !user.IsVerified {
		return ErrAccountNotVerified
	}
	return as.issueOtp(ctx, email, models.OtpResetPassword)
}

func (as *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	email := helpers.NormalizeEmail(req.Email)
	otp, err := as.consumeOtp(ctx, email, req.OtpCode, models.OtpResetPassword)
	if err != nil {
		return err
	}

	user, err := as.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	hash, err := helpers.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := as.claimOtp(ctx, otp.ID); err != nil {
		return err
	}
	user.PasswordHash = hash
	return as.users.UpdateUser(ctx, user)
}

// claimOtp marks a code used. A code claimed by a concurrent request is
// reported as invalid.
func (as *AuthService) claimOtp(ctx context.Context, id uint) error {
	if err := as.otps.MarkOtpUsed(ctx, id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return ErrOtpInvalid
		}
		return err
	}
	return nil
}

// RefreshAccessToken mints a new access token. The refresh token itself is
// returned unchanged.
func (as *AuthService) RefreshAccessToken(ctx context.Context, req models.RefreshTokenRequest) (*models.AuthResponse, error) {
	claims, err := as.issuer.ValidateToken(req.RefreshToken, helpers.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	stored, err := as.tokens.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if stored.IsRevoked || as.now().After(stored.ExpiresAt) || stored.UserID != claims.UserID {
		return nil, ErrInvalidRefresh
	}

	user, err := as.users.GetUserByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}

	access, err := as.issuer.GenerateAccessToken(user.ID, user.Email, user.Role.Name)
	if err != nil {
		return nil, err
	}
	info := user.Info()
	return &models.AuthResponse{
		Token:        access,
		RefreshToken: req.RefreshToken,
		Message:      "Token refreshed successfully",
		User:         &info,
	}, nil
}

// Authenticate resolves a bearer access token to the caller's identity.
func (as *AuthService) Authenticate(ctx context.Context, accessToken string) (*helpers.Identity, error) {
	claims, err := as.issuer.ValidateToken(accessToken, helpers.TokenTypeAccess)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := as.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, ErrUnauthorized
	}
	return &helpers.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role.Name,
	}, nil
}

func (as *AuthService) issueTokens(ctx context.Context, user *models.User, message string) (*models.AuthResponse, error) {
	access, err := as.issuer.GenerateAccessToken(user.ID, user.Email, user.Role.Name)
	if err != nil {
		return nil, err
	}
	refresh, err := as.issuer.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	err = as.tokens.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: as.now().Add(as.issuer.RefreshTTL()),
	})
	if err != nil {
		return nil, err
	}

	info := user.Info()
	return &models.AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		Message:      message,
		User:         &info,
	}, nil
}

func (as *AuthService) issueOtp(ctx context.Context, email string, purpose models.OtpPurpose) error {
	code, err := helpers.GenerateOTP()
	if err != nil {
		return err
	}
	now := as.now()
	err = as.otps.CreateOtp(ctx, &models.OtpVerification{
		Email:     email,
		OtpCode:   code,
		Purpose:   purpose,
		ExpiresAt: now.Add(as.cfg.OtpTTL),
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	kind := notify.KindVerification
	if purpose == models.OtpResetPassword {
		kind = notify.KindPasswordReset
	}
	if err := as.notifier.SendOtp(ctx, email, code, kind); err != nil {
		as.logger.Error("failed to send otp", "email", email, "purpose", purpose, "error", err)
	}
	return nil
}

func (as *AuthService) consumeOtp(ctx context.Context, email, code string, purpose models.OtpPurpose) (*models.OtpVerification, error) {
	otp, err := as.otps.FindUnusedOtp(ctx, email, code, purpose)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, ErrOtpInvalid
		}
		return nil, err
	}
	if otp.Expired(as.now()) {
		return nil, ErrOtpExpired
	}
	return otp, nil
}

// acquire reports whether key is outside its cooldown. Throttle failures
// are logged and let the request through.
func (as *AuthService) acquire(ctx context.Context, key string) bool {
	if as.throttle == nil {
		return true
	}
	ok, err := as.throttle.Acquire(ctx, key, as.cfg.ResendCooldown)
	if err != nil {
		as.logger.Warn("otp throttle unavailable", "error", err)
		return true
	}
	return ok
}
