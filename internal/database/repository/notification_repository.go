package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification
func (r *NotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByID retrieves a notification by ID
func (r *NotificationRepository) GetByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// GetByUserID retrieves all notifications for one user, newest first
func (r *NotificationRepository) GetByUserID(userID string) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&notifications).Error
	return notifications, err
}

// SetRead updates only the read flag
func (r *NotificationRepository) SetRead(id string, read bool) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("read", read).Error
}

// MarkAllRead flips every unread notification of one user in a single
// UPDATE statement; other users' rows are untouched
func (r *NotificationRepository) MarkAllRead(userID string) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

// Delete deletes a notification
func (r *NotificationRepository) Delete(id string) error {
	return r.db.Delete(&models.Notification{}, "id = ?", id).Error
}
