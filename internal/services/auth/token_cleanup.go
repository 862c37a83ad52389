package auth

import (
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenCleanupService periodically removes expired refresh tokens
type TokenCleanupService struct {
	refreshTokenRepo *repository.RefreshTokenRepository
	interval         time.Duration
	stopCh           chan struct{}
}

func NewTokenCleanupService(db *gorm.DB) *TokenCleanupService {
	return &TokenCleanupService{
		refreshTokenRepo: repository.NewRefreshTokenRepository(db),
		interval:         time.Hour,
		stopCh:           make(chan struct{}),
	}
}

// Start launches the cleanup loop
func (s *TokenCleanupService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := s.refreshTokenRepo.DeleteExpired()
				if err != nil {
					logrus.Warnf("Failed to clean up expired refresh tokens: %v", err)
				} else if deleted > 0 {
					logrus.Infof("Cleaned up %d expired refresh tokens", deleted)
				}
			case <-s.stopCh:
				return
			}
		}
	}()
}

// Stop halts the cleanup loop
func (s *TokenCleanupService) Stop() {
	close(s.stopCh)
}
