package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

// MessageFilter captures the query-string filter variants on the message list
type MessageFilter struct {
	ContextID          string
	UserMessages       string
	ParticipantsFilter string
	ViewType           string
}

type MessageService struct {
	db            *gorm.DB
	messageRepo   *repository.MessageRepository
	userRepo      *repository.UserRepository
	notifications *NotificationService
}

func NewMessageService(db *gorm.DB, notifications *NotificationService) *MessageService {
	return &MessageService{
		db:            db,
		messageRepo:   repository.NewMessageRepository(db),
		userRepo:      repository.NewUserRepository(db),
		notifications: notifications,
	}
}

// Send creates a message and notifies the recipient in the same transaction
func (s *MessageService) Send(senderID string, req *models.CreateMessageRequest) (*models.Message, error) {
	if _, err := s.userRepo.GetByID(req.RecipientID); err != nil {
		return nil, errors.New("recipient not found")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Context:     req.Context,
		Content:     req.Content,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewMessageRepository(tx).Create(message); err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		return s.notifications.MessageSent(tx, message)
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// List returns messages involving the caller, narrowed by the filter
func (s *MessageService) List(callerID string, filter MessageFilter) ([]*models.Message, error) {
	switch {
	case filter.ParticipantsFilter != "":
		parts := strings.SplitN(filter.ParticipantsFilter, ",", 2)
		if len(parts) != 2 {
			return nil, errors.New("participants_filter expects two comma-separated user ids")
		}
		return s.messageRepo.GetBetween(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	case filter.UserMessages != "":
		return s.messageRepo.GetBetween(callerID, filter.UserMessages)
	case filter.ViewType == "inbox":
		return s.messageRepo.GetReceived(callerID)
	}

	messages, err := s.messageRepo.GetInvolving(callerID)
	if err != nil {
		return nil, err
	}
	if filter.ContextID == "" {
		return messages, nil
	}
	filtered := messages[:0]
	for _, m := range messages {
		if m.Context == filter.ContextID {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// Threads aggregates the caller's messages into one row per
// (other participant, context) pair, newest first.
func (s *MessageService) Threads(callerID string) ([]*models.MessageThread, error) {
	messages, err := s.messageRepo.GetInvolving(callerID)
	if err != nil {
		return nil, err
	}

	usernames := map[string]string{}
	lookupName := func(userID string) string {
		if name, ok := usernames[userID]; ok {
			return name
		}
		name := userID
		if u, err := s.userRepo.GetByID(userID); err == nil {
			name = u.Username
		}
		usernames[userID] = name
		return name
	}

	seen := map[string]bool{}
	var threads []*models.MessageThread
	// messages arrive newest first, so the first hit per key carries the
	// most recent timestamp
	for _, m := range messages {
		other := m.SenderID
		if other == callerID {
			other = m.RecipientID
		}
		key := other + "|" + m.Context
		if seen[key] {
			continue
		}
		seen[key] = true

		name := lookupName(other)
		title := name
		if m.Context != "" {
			title = fmt.Sprintf("%s (%s)", name, m.Context)
		}
		threads = append(threads, &models.MessageThread{
			ID:            key,
			RecipientID:   other,
			RecipientName: name,
			ContextID:     m.Context,
			Title:         title,
			LastTimestamp: m.Timestamp,
		})
	}
	return threads, nil
}
