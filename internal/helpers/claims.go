package helpers

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type CustomClaims struct {
	UserID    uint   `json:"uid"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller, resolved once per request and
// passed explicitly to every service call.
type Identity struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (id *Identity) IsOwner(userID uint) bool {
	return id != nil && id.UserID == userID
}
