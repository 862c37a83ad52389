package repository

import (
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(id string) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// GetInvolving retrieves all messages the user sent or received, newest first
func (r *MessageRepository) GetInvolving(userID string) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("timestamp DESC").Find(&messages).Error
	return messages, err
}

// GetReceived retrieves the user's inbox, newest first
func (r *MessageRepository) GetReceived(userID string) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.Where("recipient_id = ?", userID).Order("timestamp DESC").Find(&messages).Error
	return messages, err
}

// GetBetween retrieves the conversation between two users, newest first
func (r *MessageRepository) GetBetween(userA, userB string) ([]*models.Message, error) {
	var messages []*models.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).Order("timestamp DESC").Find(&messages).Error
	return messages, err
}
