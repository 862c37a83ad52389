package repository

import (
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create creates a new assignment
func (r *AssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Create(assignment).Error
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(id string) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// GetAll retrieves all assignments
func (r *AssignmentRepository) GetAll() ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := r.db.Order("assigned_at DESC").Find(&assignments).Error
	return assignments, err
}

// GetByAnalystID retrieves all assignments for one analyst profile
func (r *AssignmentRepository) GetByAnalystID(analystID string) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	err := r.db.Where("analyst_id = ?", analystID).Order("assigned_at DESC").Find(&assignments).Error
	return assignments, err
}

// Update updates an assignment
func (r *AssignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Save(assignment).Error
}

// StampSubmittedAt sets submitted_at only if it is still unset. The
// targeted single-column update avoids clobbering concurrent writes to
// other fields of the same row.
func (r *AssignmentRepository) StampSubmittedAt(id string, at time.Time) error {
	return r.db.Model(&models.Assignment{}).
		Where("id = ? AND submitted_at IS NULL", id).
		Update("submitted_at", at).Error
}

// SetStatus updates only the status column
func (r *AssignmentRepository) SetStatus(id, status string) error {
	return r.db.Model(&models.Assignment{}).Where("id = ?", id).Update("status", status).Error
}

// Delete deletes an assignment
func (r *AssignmentRepository) Delete(id string) error {
	return r.db.Delete(&models.Assignment{}, "id = ?", id).Error
}
