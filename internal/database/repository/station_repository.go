package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type StationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) *StationRepository {
	return &StationRepository{db: db}
}

// Create creates a new station
func (r *StationRepository) Create(station *models.Station) error {
	return r.db.Create(station).Error
}

// GetByID retrieves a station by ID
func (r *StationRepository) GetByID(id string) (*models.Station, error) {
	var station models.Station
	err := r.db.First(&station, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// GetByIDs retrieves all stations matching the given IDs
func (r *StationRepository) GetByIDs(ids []string) ([]*models.Station, error) {
	var stations []*models.Station
	err := r.db.Where("id IN ?", ids).Find(&stations).Error
	return stations, err
}

// GetAll retrieves all stations
func (r *StationRepository) GetAll() ([]*models.Station, error) {
	var stations []*models.Station
	err := r.db.Order("name").Find(&stations).Error
	return stations, err
}

// Update updates a station
func (r *StationRepository) Update(station *models.Station) error {
	return r.db.Save(station).Error
}

// Delete deletes a station
func (r *StationRepository) Delete(id string) error {
	return r.db.Delete(&models.Station{}, "id = ?", id).Error
}
