package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

const maxAvatarBytes = 5 << 20

func GetMe(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		user, err := u.GetProfile(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, "User retrieved successfully"))
	}
}

func UpdateMe(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		var req models.UpdateUserRequest
		if !bindJSON(c, &req, false) {
			return
		}
		user, err := u.UpdateProfile(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, "Profile updated successfully"))
	}
}

// UploadAvatar accepts a multipart "avatar" image file.
func UploadAvatar(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		header, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("avatar file is required"))
			return
		}
		if header.Size > maxAvatarBytes {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("avatar must be 5MB or smaller"))
			return
		}
		if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("avatar must be an image"))
			return
		}

		file, err := header.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()

		user, err := u.UpdateAvatar(c.Request.Context(), id, file)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, "Avatar updated successfully"))
	}
}
