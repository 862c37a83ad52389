package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents an advertiser that commissions campaigns
type Client struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// Relationships
	Campaigns []Campaign `json:"campaigns,omitempty" gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CreateClientRequest represents the request to create a new client
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required" example:"Awash Bank"`
	Description string `json:"description" example:"Quarterly brand campaigns"`
}

// UpdateClientRequest represents the request to update a client
type UpdateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
