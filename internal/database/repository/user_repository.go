package repository

import (
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID with group memberships
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Groups").Preload("Analyst").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username with group memberships
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Groups").Preload("Analyst").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll retrieves all users with group memberships
func (r *UserRepository) GetAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Preload("Groups").Order("username").Find(&users).Error
	return users, err
}

// GetPage retrieves one page of users ordered by username
func (r *UserRepository) GetPage(offset, limit int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.Preload("Groups").Order("username").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// GetStaff retrieves every user holding staff or manager privilege: the
// recipient set for submission notifications
func (r *UserRepository) GetStaff() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Distinct("users.*").
		Joins("LEFT JOIN user_groups ON user_groups.user_id = users.id").
		Joins("LEFT JOIN groups ON groups.id = user_groups.group_id").
		Where("users.is_staff = ? OR users.is_superuser = ? OR groups.name = ?", true, true, models.GroupManagers).
		Find(&users).Error
	return users, err
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateLastLogin updates the last login time for a user
func (r *UserRepository) UpdateLastLogin(userID string) error {
	now := time.Now()
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", now).Error
}

// CheckUsernameExists checks if a username already exists
func (r *UserRepository) CheckUsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// AddToGroup appends a group membership
func (r *UserRepository) AddToGroup(user *models.User, group *models.Group) error {
	return r.db.Model(user).Association("Groups").Append(group)
}

// Delete deletes a user
func (r *UserRepository) Delete(id string) error {
	return r.db.Select("Analyst", "RefreshTokens").Delete(&models.User{ID: id}).Error
}
