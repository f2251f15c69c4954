package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/services"
)

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		var req models.ReviewRequest
		if !bindJSON(c, &req, false) {
			return
		}
		review, err := r.CreateReview(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(review, "Review created successfully"))
	}
}

func UpdateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		reviewID, ok := paramID(c, "id")
		if !ok {
			return
		}
		var req models.ReviewRequest
		if !bindJSON(c, &req, false) {
			return
		}
		review, err := r.UpdateReview(c.Request.Context(), id, reviewID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(review, "Review updated successfully"))
	}
}

func ReviewsByHotel(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, ok := paramID(c, "id")
		if !ok {
			return
		}
		reviews, err := r.GetReviewsByHotel(c.Request.Context(), hotelID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reviews, "Reviews retrieved successfully"))
	}
}

func ReviewsByRoom(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := paramID(c, "id")
		if !ok {
			return
		}
		reviews, err := r.GetReviewsByRoom(c.Request.Context(), roomID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(reviews, "Reviews retrieved successfully"))
	}
}

func MyReviewByRoom(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			return
		}
		roomID, ok := paramID(c, "id")
		if !ok {
			return
		}
		review, err := r.GetMyReviewByRoom(c.Request.Context(), id, roomID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(review, "Review retrieved successfully"))
	}
}
