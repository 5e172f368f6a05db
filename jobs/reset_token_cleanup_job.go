package jobs

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"spareparts-app/models"
)

// ResetTokenCleanupJob periodically clears expired password reset tokens.
// Expired tokens are already rejected at use time; the sweep just keeps the
// columns from accumulating stale material.
type ResetTokenCleanupJob struct {
	db     *gorm.DB
	ticker *time.Ticker
	done   chan bool
}

// NewResetTokenCleanupJob creates a new reset token cleanup job
func NewResetTokenCleanupJob(db *gorm.DB, interval time.Duration) *ResetTokenCleanupJob {
	return &ResetTokenCleanupJob{
		db:     db,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the cleanup job
func (j *ResetTokenCleanupJob) Start() {
	logrus.Info("Reset token cleanup job started")

	go func() {
		// Run immediately on start
		j.cleanup()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				logrus.Info("Reset token cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup job
func (j *ResetTokenCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *ResetTokenCleanupJob) cleanup() {
	result := j.db.Model(&models.User{}).
		Where("reset_password_expires IS NOT NULL AND reset_password_expires < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})

	if result.Error != nil {
		logrus.WithError(result.Error).Error("failed to clean up expired reset tokens")
		return
	}
	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Info("cleared expired reset tokens")
	}
}
