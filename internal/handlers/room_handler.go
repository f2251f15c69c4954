package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

func SearchRooms(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RoomSearchRequest
		if !bindJSON(c, &req, true) {
			return
		}
		page, err := r.SearchRooms(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(page, "Rooms retrieved successfully"))
	}
}

func FilterRooms(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RoomFilterRequest
		if !bindJSON(c, &req, true) {
			return
		}
		page, err := r.FilterRooms(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(page, "Rooms retrieved successfully"))
	}
}

func GetRoom(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := paramID(c, "id")
		if !ok {
			return
		}
		room, err := r.GetRoomDetail(c.Request.Context(), roomID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(room, "Room retrieved successfully"))
	}
}

func ListHotels(r *services.RoomService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotels, err := r.GetAllHotels(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(hotels, "Hotels retrieved successfully"))
	}
}
