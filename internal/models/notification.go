package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification represents a materialized alert for one user. Rows are
// created by the fanout engine only; API clients may read them and flip
// the read flag, nothing else.
type Notification struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       string     `json:"user" gorm:"not null;index;type:uuid"`
	Message      string     `json:"message" gorm:"type:text;not null"`
	Link         string     `json:"link" gorm:"type:varchar(255)"`
	Read         bool       `json:"read" gorm:"default:false;index"`
	Timestamp    time.Time  `json:"timestamp" gorm:"autoCreateTime"`
	DeadlineDate *time.Time `json:"deadline_date"`

	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// UpdateNotificationRequest allows a client to toggle the read flag.
// An omitted flag (or empty body) means mark as read.
type UpdateNotificationRequest struct {
	Read *bool `json:"read"`
}
