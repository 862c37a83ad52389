package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type AnalystRepository struct {
	db *gorm.DB
}

func NewAnalystRepository(db *gorm.DB) *AnalystRepository {
	return &AnalystRepository{db: db}
}

// Create creates a new analyst profile
func (r *AnalystRepository) Create(analyst *models.Analyst) error {
	return r.db.Create(analyst).Error
}

// GetByID retrieves an analyst by ID with the owning user
func (r *AnalystRepository) GetByID(id string) (*models.Analyst, error) {
	var analyst models.Analyst
	err := r.db.Preload("User").First(&analyst, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &analyst, nil
}

// GetByUserID retrieves the analyst profile owned by a user
func (r *AnalystRepository) GetByUserID(userID string) (*models.Analyst, error) {
	var analyst models.Analyst
	err := r.db.Where("user_id = ?", userID).First(&analyst).Error
	if err != nil {
		return nil, err
	}
	return &analyst, nil
}

// GetAll retrieves all analyst profiles with their users
func (r *AnalystRepository) GetAll() ([]*models.Analyst, error) {
	var analysts []*models.Analyst
	err := r.db.Preload("User").Find(&analysts).Error
	return analysts, err
}

// Delete deletes an analyst profile; assignment references are nulled by
// the SET NULL constraint
func (r *AnalystRepository) Delete(id string) error {
	return r.db.Delete(&models.Analyst{}, "id = ?", id).Error
}
