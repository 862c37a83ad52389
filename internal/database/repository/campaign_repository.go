package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by ID with its client, stations and periods
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.Preload("Client").
		Preload("Stations").
		Preload("MonitoringPeriods").
		First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetAll retrieves all campaigns
func (r *CampaignRepository) GetAll() ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.Preload("Client").
		Preload("Stations").
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}

// GetByStatuses retrieves campaigns in any of the given statuses, with the
// data needed for the accountant summary
func (r *CampaignRepository) GetByStatuses(statuses []string) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.Where("status IN ?", statuses).
		Preload("Client").
		Preload("MonitoringPeriods").
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}

// Update updates a campaign
func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// ReplaceStations replaces the campaign's station set
func (r *CampaignRepository) ReplaceStations(campaign *models.Campaign, stations []*models.Station) error {
	return r.db.Model(campaign).Association("Stations").Replace(stations)
}

// Delete deletes a campaign and, via cascade, its assignments and periods
func (r *CampaignRepository) Delete(id string) error {
	return r.db.Select("Assignments", "MonitoringPeriods").Delete(&models.Campaign{ID: id}).Error
}
