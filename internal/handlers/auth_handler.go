package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

func Register(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if !bindJSON(c, &req, false) {
			return
		}
		user, err := a.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(user, "Registration successful. Please check your email for the verification code."))
	}
}

func VerifyOtp(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OtpVerificationRequest
		if !bindJSON(c, &req, false) {
			return
		}
		res, err := a.VerifyOtp(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, res.Message))
	}
}

func ResendOtp(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ForgotPasswordRequest
		if !bindJSON(c, &req, false) {
			return
		}
		if err := a.ResendOtp(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "A new verification code has been sent"))
	}
}

// Login reports every failure as 401.
func Login(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if !bindJSON(c, &req, false) {
			return
		}
		res, err := a.Login(c.Request.Context(), req)
		if err != nil {
			if statusFor(err) == http.StatusInternalServerError {
				_ = c.Error(err)
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("Login failed"))
				return
			}
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, res.Message))
	}
}

func ForgotPassword(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ForgotPasswordRequest
		if !bindJSON(c, &req, false) {
			return
		}
		if err := a.ForgotPassword(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "If the email is registered, a reset code has been sent"))
	}
}

func ResetPassword(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResetPasswordRequest
		if !bindJSON(c, &req, false) {
			return
		}
		if err := a.ResetPassword(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Password reset successfully"))
	}
}

func RefreshToken(a *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RefreshTokenRequest
		if !bindJSON(c, &req, false) {
			return
		}
		res, err := a.RefreshAccessToken(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, res.Message))
	}
}

// AuthTest reports that the auth routes are reachable.
func AuthTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Auth API is working"))
	}
}
