package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonitoringPeriod represents a campaign's monitoring window plus the
// separate window during which stations authenticate their transmission logs
type MonitoringPeriod struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:uuid"`
	CampaignID          string    `json:"campaign_id" gorm:"not null;index;type:uuid"`
	MonitoringStart     time.Time `json:"monitoring_start" gorm:"not null"`
	MonitoringEnd       time.Time `json:"monitoring_end" gorm:"not null"`
	AuthenticationStart time.Time `json:"authentication_start" gorm:"not null"`
	AuthenticationEnd   time.Time `json:"authentication_end" gorm:"not null;index"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Relationships
	Campaign Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the MonitoringPeriod model
func (MonitoringPeriod) TableName() string {
	return "monitoring_periods"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (p *MonitoringPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// CreateMonitoringPeriodRequest represents the request to create a monitoring period
type CreateMonitoringPeriodRequest struct {
	CampaignID          string    `json:"campaign_id" binding:"required"`
	MonitoringStart     time.Time `json:"monitoring_start" binding:"required"`
	MonitoringEnd       time.Time `json:"monitoring_end" binding:"required"`
	AuthenticationStart time.Time `json:"authentication_start" binding:"required"`
	AuthenticationEnd   time.Time `json:"authentication_end" binding:"required"`
}

// UpdateMonitoringPeriodRequest represents the request to update a monitoring period
type UpdateMonitoringPeriodRequest struct {
	MonitoringStart     time.Time `json:"monitoring_start" binding:"required"`
	MonitoringEnd       time.Time `json:"monitoring_end" binding:"required"`
	AuthenticationStart time.Time `json:"authentication_start" binding:"required"`
	AuthenticationEnd   time.Time `json:"authentication_end" binding:"required"`
}
