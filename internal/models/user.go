package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a user in the system
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Username     string     `json:"username" gorm:"type:varchar(255);not null;unique;index"`
	Email        string     `json:"email" gorm:"type:varchar(255)"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	FirstName    string     `json:"first_name" gorm:"type:varchar(255)"`
	LastName     string     `json:"last_name" gorm:"type:varchar(255)"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	IsStaff      bool       `json:"is_staff" gorm:"default:false;index"`
	IsSuperuser  bool       `json:"is_superuser" gorm:"default:false;index"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Groups        []Group        `json:"groups,omitempty" gorm:"many2many:user_groups;"`
	Analyst       *Analyst       `json:"analyst,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// FullName combines first and last name, falling back to the username
func (u *User) FullName() string {
	if u.FirstName != "" || u.LastName != "" {
		name := u.FirstName
		if u.LastName != "" {
			if name != "" {
				name += " "
			}
			name += u.LastName
		}
		return name
	}
	return u.Username
}

// UserResponse exposes a user with the resolved role name
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
}

// CreateUserRequest represents an admin request to create a user
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=6"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsStaff   bool   `json:"is_staff"`
}

// SetUserActiveRequest represents a request to set user active status
type SetUserActiveRequest struct {
	IsActive bool `json:"is_active"`
}
