package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

// StartScheduler starts the background task scheduler
func StartScheduler(icons *IconService, logger *logrus.Logger) {
	go func() {
		logger.Info("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 3:30 AM
			if now.Hour() == 3 && now.Minute() == 30 {
				logger.Info("Triggering scheduled icon cleanup [03:30]...")

				deleted, err := icons.Cleanup()
				if err != nil {
					logger.Errorf("Error running icon cleanup: %v", err)
					continue
				}
				logger.Infof("Scheduled cleanup removed %d unused icon(s)", deleted)
			}
		}
	}()
}
