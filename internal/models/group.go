package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default group names seeded at startup
const (
	GroupAdmins      = "Admins"
	GroupManagers    = "Managers"
	GroupAnalysts    = "Analysts"
	GroupAccountants = "Accountants"
)

// Group represents a named role group (Admins, Managers, Analysts, Accountants)
type Group struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;unique;index" example:"Managers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Users []User `json:"users,omitempty" gorm:"many2many:user_groups;"`
}

// TableName specifies the table name for the Group model
func (Group) TableName() string {
	return "groups"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
