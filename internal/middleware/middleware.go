package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

// IdentityKey is the gin context key holding the caller's *helpers.Identity.
const IdentityKey = "user"

// Authenticator resolves an access token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*helpers.Identity, error)
}

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if id, ok := GetIdentity(c); ok {
			attrs = append(attrs, "user_id", id.UserID)
		}
		logger.Info("HTTP Request", attrs...)
	}
}

// ErrorHandler logs errors attached with c.Error and, when the handler has
// not written a response yet, replies with a generic 500.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID, _ := c.Get("request_id")

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("An unexpected error occurred"))
		}
	}
}

// Recovery turns panics into the standard 500 envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestID, _ := c.Get("request_id")
		logger.Error("Panic recovered",
			"request_id", requestID,
			"panic", recovered,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse("An unexpected error occurred"))
	})
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header.
func AuthMiddleware(auth Authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
				return
			}
			logger.Error("Authentication failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse("An unexpected error occurred"))
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetIdentity returns the identity stored by AuthMiddleware.
func GetIdentity(c *gin.Context) (*helpers.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*helpers.Identity)
	return identity, ok && identity != nil
}
