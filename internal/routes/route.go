package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/hotelbooking/internal/container"
	"github.com/joshua-takyi/hotelbooking/internal/handlers"
	"github.com/joshua-takyi/hotelbooking/internal/metrics"
	"github.com/joshua-takyi/hotelbooking/internal/middleware"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// SetupRoutes configures all routes with the dependency container. The
// returned limiter must be stopped on shutdown.
func SetupRoutes(c *container.Container) (*gin.Engine, *middleware.RateLimiter) {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     c.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(middleware.Recovery(c.Logger))
	r.Use(metrics.GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := middleware.NewRateLimiter(rate.Limit(c.Config.RateLimitRPS), c.Config.RateLimitBurst, 5*time.Minute)
	go limiter.Sweep(time.Minute)

	requireAuth := middleware.AuthMiddleware(c.AuthService, c.Logger)

	api := r.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, models.SuccessResponse(gin.H{"status": "OK"}, "hotel-booking-api"))
		})
		api.GET("/hotels", handlers.ListHotels(c.RoomService))
	}

	auth := api.Group("/auth")
	auth.Use(limiter.Handler())
	{
		auth.POST("/register", handlers.Register(c.AuthService))
		auth.POST("/verify-otp", handlers.VerifyOtp(c.AuthService))
		auth.POST("/resend-otp", handlers.ResendOtp(c.AuthService))
		auth.POST("/login", handlers.Login(c.AuthService))
		auth.POST("/forgot-password", handlers.ForgotPassword(c.AuthService))
		auth.POST("/reset-password", handlers.ResetPassword(c.AuthService))
		auth.POST("/refresh-token", handlers.RefreshToken(c.AuthService))
		auth.GET("/test", handlers.AuthTest())
	}

	bookings := api.Group("/bookings")
	{
		bookings.GET("/rooms/by-status", handlers.RoomsByBookingStatus(c.BookingService))

		mine := bookings.Group("", requireAuth)
		mine.POST("", handlers.CreateBooking(c.BookingService))
		mine.POST("/payment", handlers.ProcessPayment(c.BookingService))
		mine.GET("/my-bookings", handlers.MyBookings(c.BookingService))
		mine.GET("/upcoming", handlers.UpcomingBookings(c.BookingService))
		mine.GET("/past", handlers.PastBookings(c.BookingService))
		mine.PUT("/:id/cancel", handlers.CancelBooking(c.BookingService))
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/room/:id", handlers.ReviewsByRoom(c.ReviewService))
		reviews.GET("/hotel/:id", handlers.ReviewsByHotel(c.ReviewService))

		mine := reviews.Group("", requireAuth)
		mine.POST("", handlers.CreateReview(c.ReviewService))
		mine.PUT("/:id", handlers.UpdateReview(c.ReviewService))
		mine.GET("/my-review/room/:id", handlers.MyReviewByRoom(c.ReviewService))
	}

	rooms := api.Group("/rooms")
	{
		rooms.POST("/search", handlers.SearchRooms(c.RoomService))
		rooms.POST("/filter", handlers.FilterRooms(c.RoomService))
		rooms.GET("/:id", handlers.GetRoom(c.RoomService))
	}

	users := api.Group("/users", requireAuth)
	{
		users.GET("/me", handlers.GetMe(c.UserService))
		users.PUT("/me", handlers.UpdateMe(c.UserService))
		users.PUT("/me/avatar", handlers.UploadAvatar(c.UserService))
	}

	favourites := api.Group("/favourites", requireAuth)
	{
		favourites.GET("", handlers.GetFavourites(c.FavouriteService))
		favourites.POST("/:roomId", handlers.AddToFavourites(c.FavouriteService))
		favourites.DELETE("/:roomId", handlers.RemoveFromFavourite(c.FavouriteService))
	}

	return r, limiter
}
