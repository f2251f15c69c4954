package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/hotelbooking/internal/cache"
	"github.com/joshua-takyi/hotelbooking/internal/config"
	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/models"
	"github.com/joshua-takyi/hotelbooking/internal/notify"
	"github.com/joshua-takyi/hotelbooking/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Stores
	Postgres *models.PostgresRepo
	Mongo    *models.MongodbRepo
	Cache    *cache.Store

	AuthService      *services.AuthService
	UserService      *services.UserService
	BookingService   *services.BookingService
	ReviewService    *services.ReviewService
	RoomService      *services.RoomService
	FavouriteService *services.FavouriteService
	CleanupService   *services.CleanupService
}

// NewContainer wires repositories and services. redisClient, mongoClient and
// cld may be nil; the features that need them are then disabled.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	mongoClient *mongo.Client,
	cld *cloudinary.Cloudinary,
) *Container {
	pg := models.PostgresNewRepo(db)
	store := cache.NewStore(redisClient)

	var mdb *models.MongodbRepo
	var favourites models.FavouriteRepo
	if mongoClient != nil {
		mdb = models.MongodbNewRepo(mongoClient, cfg.MongoDBDatabase)
		favourites = mdb
	}

	var uploader services.AvatarUploader
	if cld != nil {
		uploader = helpers.NewImageUploader(cld)
	}

	mailer := notify.NewAsync(notify.NewEmailNotifier(notify.EmailConfig{
		SMTPHost:  cfg.SMTPHost,
		SMTPPort:  cfg.SMTPPort,
		SMTPUser:  cfg.SMTPUser,
		SMTPPass:  cfg.SMTPPass,
		FromEmail: cfg.MailFrom,
	}, logger), logger)

	issuer := helpers.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(pg, pg, pg, issuer, mailer, store, services.AuthConfig{
		OtpTTL:         cfg.OtpTTL,
		ResendCooldown: cfg.OtpResendCooldown,
	}, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Postgres:         pg,
		Mongo:            mdb,
		Cache:            store,
		AuthService:      authService,
		UserService:      services.NewUserService(pg, uploader),
		BookingService:   services.NewBookingService(pg, logger),
		ReviewService:    services.NewReviewService(pg, pg),
		RoomService:      services.NewRoomService(pg, store, logger),
		FavouriteService: services.NewFavouriteService(favourites, pg),
		CleanupService:   services.NewCleanupService(pg, pg, cfg.CleanupInterval, cfg.UnverifiedUserTTL, logger),
	}
}
