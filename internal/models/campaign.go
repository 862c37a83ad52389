package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campaign status values
const (
	CampaignStatusActive    = "ACTIVE"
	CampaignStatusCompleted = "COMPLETED"
	CampaignStatusClosed    = "CLOSED"
)

// Campaign represents an advertising campaign commissioned by a client
type Campaign struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	ClientID    string    `json:"client_id" gorm:"not null;index;type:uuid"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(16);default:'ACTIVE';index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Client            Client             `json:"client,omitempty" gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
	Stations          []Station          `json:"stations,omitempty" gorm:"many2many:campaign_stations;"`
	Assignments       []Assignment       `json:"assignments,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	MonitoringPeriods []MonitoringPeriod `json:"monitoring_periods,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	ClientID    string   `json:"client_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string   `json:"name" binding:"required" example:"Meskel Holiday Push"`
	Description string   `json:"description" example:"Radio and TV spots for the holiday window"`
	StationIDs  []string `json:"station_ids"`
}

// UpdateCampaignRequest represents the request to update a campaign
type UpdateCampaignRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Status      string    `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED CLOSED"`
	StationIDs  *[]string `json:"station_ids"`
}

// AccountantCampaignSummary is the billing read model exposed to accountants
type AccountantCampaignSummary struct {
	ID                                string     `json:"id"`
	Name                              string     `json:"name"`
	ClientName                        string     `json:"client_name"`
	Status                            string     `json:"status"`
	AnticipatedCampaignCompletionDate *time.Time `json:"anticipated_campaign_completion_date"`
	CreatedAt                         time.Time  `json:"created_at"`
}
