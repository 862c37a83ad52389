package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Analyst represents a media analyst profile, owned one-to-one by a user
type Analyst struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex;type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Analyst model
func (Analyst) TableName() string {
	return "analysts"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (a *Analyst) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// CreateAnalystRequest creates a user account together with its analyst profile
type CreateAnalystRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// AnalystResponse exposes the profile with the owning user's name for
// recipient selection in the frontend
type AnalystResponse struct {
	ID       string `json:"id"`
	Username string `json:"user"`
	UserID   string `json:"user_id"`
}
