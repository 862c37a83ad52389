package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents a peer-to-peer message. Append-only: no edits or
// deletes are exposed.
type Message struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	SenderID    string    `json:"sender" gorm:"not null;index;type:uuid"`
	RecipientID string    `json:"recipient" gorm:"not null;index;type:uuid"`
	Context     string    `json:"context" gorm:"type:varchar(255);index"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	Timestamp   time.Time `json:"timestamp" gorm:"autoCreateTime"`

	// Relationships
	Sender    User `json:"-" gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE"`
	Recipient User `json:"-" gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// CreateMessageRequest represents the request to send a message
type CreateMessageRequest struct {
	RecipientID string `json:"recipient" binding:"required"`
	Context     string `json:"context"`
	Content     string `json:"content" binding:"required"`
}

// MessageThread is one aggregated conversation row: the most recent
// message per (other participant, context) pair
type MessageThread struct {
	ID            string    `json:"id"`
	RecipientID   string    `json:"recipientId"`
	RecipientName string    `json:"recipientName"`
	ContextID     string    `json:"contextId"`
	Title         string    `json:"title"`
	LastTimestamp time.Time `json:"lastTimestamp"`
}
