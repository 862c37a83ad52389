package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(id string) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetAll retrieves all clients
func (r *ClientRepository) GetAll() ([]*models.Client, error) {
	var clients []*models.Client
	err := r.db.Order("created_at DESC").Find(&clients).Error
	return clients, err
}

// Update updates a client
func (r *ClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete deletes a client
func (r *ClientRepository) Delete(id string) error {
	return r.db.Delete(&models.Client{}, "id = ?", id).Error
}
