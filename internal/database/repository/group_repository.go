package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// GetByName retrieves a group by its name
func (r *GroupRepository) GetByName(name string) (*models.Group, error) {
	var group models.Group
	err := r.db.Where("name = ?", name).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetMembers retrieves the users belonging to the named group
func (r *GroupRepository) GetMembers(name string) ([]*models.User, error) {
	var group models.Group
	err := r.db.Preload("Users").Where("name = ?", name).First(&group).Error
	if err != nil {
		return nil, err
	}
	members := make([]*models.User, len(group.Users))
	for i := range group.Users {
		members[i] = &group.Users[i]
	}
	return members, nil
}

// GetAll retrieves all groups
func (r *GroupRepository) GetAll() ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.Order("name").Find(&groups).Error
	return groups, err
}
