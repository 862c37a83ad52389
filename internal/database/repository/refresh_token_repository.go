package repository

import (
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a new refresh token
func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// GetByToken retrieves a refresh token by its value
func (r *RefreshTokenRepository) GetByToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.Where("token = ?", token).First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// DeleteByToken removes one refresh token
func (r *RefreshTokenRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

// DeleteByUserID removes all refresh tokens for a user
func (r *RefreshTokenRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

// DeleteExpired removes tokens past their expiry and returns the count
func (r *RefreshTokenRepository) DeleteExpired() (int64, error) {
	res := r.db.Where("expires_at < ?", time.Now()).Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
