package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/joshua-takyi/hotelbooking/internal/metrics"
	"github.com/joshua-takyi/hotelbooking/internal/models"
)

// CleanupService periodically removes stale unverified accounts and expired codes.
type CleanupService struct {
	users         models.UserRepo
	otps          models.OtpRepo
	interval      time.Duration
	unverifiedTTL time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

func NewCleanupService(users models.UserRepo, otps models.OtpRepo, interval, unverifiedTTL time.Duration, logger *slog.Logger) *CleanupService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if unverifiedTTL <= 0 {
		unverifiedTTL = 10 * time.Minute
	}
	return &CleanupService{
		users:         users,
		otps:          otps,
		interval:      interval,
		unverifiedTTL: unverifiedTTL,
		logger:        logger,
		now:           time.Now,
	}
}

// Run blocks, cleaning up once per interval until ctx is cancelled.
func (cs *CleanupService) Run(ctx context.Context) {
	ticker := time.NewTicker(cs.interval)
	defer ticker.Stop()

	cs.logger.Info("cleanup job started", "interval", cs.interval)
	for {
		select {
		case <-ctx.Done():
			cs.logger.Info("cleanup job stopped")
			return
		case <-ticker.C:
			cs.CleanupNow(ctx)
		}
	}
}

// CleanupNow runs a single pass. Each step is independent; a failure is
// logged and retried on the next tick.
func (cs *CleanupService) CleanupNow(ctx context.Context) (users int64, otps int64) {
	now := cs.now()

	users, err := cs.users.DeleteUnverifiedBefore(ctx, now.Add(-cs.unverifiedTTL))
	if err != nil {
		cs.logger.Error("failed to delete unverified users", "error", err)
	} else if users > 0 {
		metrics.CleanupDeleted.WithLabelValues("unverified_users").Add(float64(users))
		cs.logger.Info("deleted unverified users", "count", users)
	}

	otps, err = cs.otps.DeleteExpiredOtps(ctx, now)
	if err != nil {
		cs.logger.Error("failed to delete expired otps", "error", err)
	} else if otps > 0 {
		metrics.CleanupDeleted.WithLabelValues("expired_otps").Add(float64(otps))
		cs.logger.Info("deleted expired otps", "count", otps)
	}
	return users, otps
}
