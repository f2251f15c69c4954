package helpers

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const AvatarFolder = "user_avatars"

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer signs and parses HS256 access and refresh tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (ti *TokenIssuer) RefreshTTL() time.Duration {
	return ti.refreshTTL
}

func (ti *TokenIssuer) GenerateAccessToken(userID uint, email, role string) (string, error) {
	return ti.sign(userID, email, role, TokenTypeAccess, ti.accessTTL)
}

func (ti *TokenIssuer) GenerateRefreshToken(userID uint, email string) (string, error) {
	return ti.sign(userID, email, "", TokenTypeRefresh, ti.refreshTTL)
}

func (ti *TokenIssuer) sign(userID uint, email, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// distinct id so two tokens minted in the same second differ
			ID: GenerateTokenID(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenStr and checks it is of the expected type.
func (ti *TokenIssuer) ValidateToken(tokenStr, tokenType string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, tokenType)
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateOTP returns a uniformly random 6-digit code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func GenerateTokenID() string {
	return uuid.NewString()
}

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// UploadImage stores file in Cloudinary under folder and returns its secure URL.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, file io.Reader, folder, publicID string) (string, error) {
	if cld == nil {
		return "", fmt.Errorf("cloudinary is not configured")
	}
	res, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
		Tags:     []string{"hotel-booking"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return res.SecureURL, nil
}

// ImageUploader uploads through a Cloudinary client.
type ImageUploader struct {
	cld *cloudinary.Cloudinary
}

func NewImageUploader(cld *cloudinary.Cloudinary) *ImageUploader {
	return &ImageUploader{cld: cld}
}

func (u *ImageUploader) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	return UploadImage(ctx, u.cld, file, folder, publicID)
}
