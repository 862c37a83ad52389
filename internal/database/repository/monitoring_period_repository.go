package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type MonitoringPeriodRepository struct {
	db *gorm.DB
}

func NewMonitoringPeriodRepository(db *gorm.DB) *MonitoringPeriodRepository {
	return &MonitoringPeriodRepository{db: db}
}

// Create creates a new monitoring period
func (r *MonitoringPeriodRepository) Create(period *models.MonitoringPeriod) error {
	return r.db.Create(period).Error
}

// GetByID retrieves a monitoring period by ID
func (r *MonitoringPeriodRepository) GetByID(id string) (*models.MonitoringPeriod, error) {
	var period models.MonitoringPeriod
	err := r.db.First(&period, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

// GetAll retrieves all monitoring periods
func (r *MonitoringPeriodRepository) GetAll() ([]*models.MonitoringPeriod, error) {
	var periods []*models.MonitoringPeriod
	err := r.db.Order("monitoring_start").Find(&periods).Error
	return periods, err
}

// GetByCampaignID retrieves all periods for one campaign
func (r *MonitoringPeriodRepository) GetByCampaignID(campaignID string) ([]*models.MonitoringPeriod, error) {
	var periods []*models.MonitoringPeriod
	err := r.db.Where("campaign_id = ?", campaignID).Order("monitoring_start").Find(&periods).Error
	return periods, err
}

// Update updates a monitoring period
func (r *MonitoringPeriodRepository) Update(period *models.MonitoringPeriod) error {
	return r.db.Save(period).Error
}

// Delete deletes a monitoring period
func (r *MonitoringPeriodRepository) Delete(id string) error {
	return r.db.Delete(&models.MonitoringPeriod{}, "id = ?", id).Error
}
