package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Station represents a broadcast station monitored for campaign spots
type Station struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Location  string    `json:"location" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Station model
func (Station) TableName() string {
	return "stations"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (s *Station) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// CreateStationRequest represents the request to create a new station
type CreateStationRequest struct {
	Name     string `json:"name" binding:"required" example:"EBS TV"`
	Location string `json:"location" example:"Addis Ababa"`
}

// UpdateStationRequest represents the request to update a station
type UpdateStationRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}
