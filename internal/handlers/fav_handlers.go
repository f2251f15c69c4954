package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

func AddToFavourites(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		roomID, ok := paramID(c, "roomId")
		if !ok {
			return
		}
		rooms, err := f.AddFavourite(c.Request.Context(), id, roomID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rooms, "Room added to favourites"))
	}
}

func RemoveFromFavourite(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		roomID, ok := paramID(c, "roomId")
		if !ok {
			return
		}
		if err := f.RemoveFavourite(c.Request.Context(), id, roomID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Room removed from favourites"))
	}
}

func GetFavourites(f *services.FavouriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		rooms, err := f.GetFavourites(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(rooms, "Favourites retrieved successfully"))
	}
}
