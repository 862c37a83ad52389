package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// messagePreviewLen caps the excerpt embedded in a new-message notification
const messagePreviewLen = 40

// EventPublisher mirrors committed domain events to an external consumer.
// Publication is best-effort: a failure is logged, never surfaced.
type EventPublisher interface {
	PublishEvent(event string, payload map[string]interface{}) error
}

// NotificationService is the fanout engine. Every method materializes
// notification rows for one committed event, synchronously and inside the
// caller's transaction. Dispatch is explicit: the write paths call these
// methods directly, there is no hidden hook registration.
type NotificationService struct {
	publisher EventPublisher
}

func NewNotificationService(publisher EventPublisher) *NotificationService {
	return &NotificationService{publisher: publisher}
}

// AssignmentCreated notifies the assigned analyst of a new assignment.
// The due date, when present, is carried as the notification deadline.
func (s *NotificationService) AssignmentCreated(tx *gorm.DB, a *models.Assignment) error {
	analystUser, campaign, err := s.loadAssignmentContext(tx, a)
	if err != nil {
		return err
	}
	if analystUser == nil {
		return nil
	}
	n := &models.Notification{
		UserID:       analystUser.ID,
		Message:      fmt.Sprintf("New assignment: Campaign %s", campaign.Name),
		Link:         fmt.Sprintf("/assignments/%s", a.ID),
		DeadlineDate: a.DueDate,
	}
	if err := repository.NewNotificationRepository(tx).Create(n); err != nil {
		return err
	}
	s.publish("assignment.created", map[string]interface{}{
		"assignment": a.ID,
		"campaign":   a.CampaignID,
		"analyst":    analystUser.ID,
	})
	return nil
}

// AssignmentSubmitted notifies every staff/manager user
func (s *NotificationService) AssignmentSubmitted(tx *gorm.DB, a *models.Assignment) error {
	analystUser, campaign, err := s.loadAssignmentContext(tx, a)
	if err != nil {
		return err
	}
	analystName := "unassigned"
	if analystUser != nil {
		analystName = analystUser.Username
	}
	staff, err := repository.NewUserRepository(tx).GetStaff()
	if err != nil {
		return err
	}
	notificationRepo := repository.NewNotificationRepository(tx)
	for _, u := range staff {
		n := &models.Notification{
			UserID:  u.ID,
			Message: fmt.Sprintf("Assignment submitted by %s for campaign %s", analystName, campaign.Name),
			Link:    fmt.Sprintf("/assignments/%s", a.ID),
		}
		if err := notificationRepo.Create(n); err != nil {
			return err
		}
	}
	s.publish("assignment.submitted", map[string]interface{}{
		"assignment": a.ID,
		"campaign":   a.CampaignID,
	})
	return nil
}

// AssignmentReviewed notifies the assigned analyst of an approval or rejection
func (s *NotificationService) AssignmentReviewed(tx *gorm.DB, a *models.Assignment, approved bool) error {
	analystUser, campaign, err := s.loadAssignmentContext(tx, a)
	if err != nil {
		return err
	}
	if analystUser == nil {
		return nil
	}
	verdict := "approved"
	if !approved {
		verdict = "rejected"
	}
	n := &models.Notification{
		UserID:  analystUser.ID,
		Message: fmt.Sprintf("Your assignment for campaign %s has been %s", campaign.Name, verdict),
		Link:    fmt.Sprintf("/assignments/%s", a.ID),
	}
	if err := repository.NewNotificationRepository(tx).Create(n); err != nil {
		return err
	}
	s.publish("assignment."+verdict, map[string]interface{}{
		"assignment": a.ID,
		"campaign":   a.CampaignID,
	})
	return nil
}

// AssignmentOverdue notifies the assigned analyst that the due date has
// passed. Callers re-fire this on every qualifying save; there is no
// dedup marker.
func (s *NotificationService) AssignmentOverdue(tx *gorm.DB, a *models.Assignment) error {
	analystUser, campaign, err := s.loadAssignmentContext(tx, a)
	if err != nil {
		return err
	}
	if analystUser == nil {
		return nil
	}
	n := &models.Notification{
		UserID:       analystUser.ID,
		Message:      fmt.Sprintf("Assignment overdue for campaign %s", campaign.Name),
		Link:         fmt.Sprintf("/assignments/%s", a.ID),
		DeadlineDate: a.DueDate,
	}
	return repository.NewNotificationRepository(tx).Create(n)
}

// CampaignClosed notifies every member of the Accountants group that the
// campaign is ready for payment processing. A missing group is logged and
// skipped; it never rolls back the status write.
func (s *NotificationService) CampaignClosed(tx *gorm.DB, campaign *models.Campaign) error {
	accountants, err := repository.NewGroupRepository(tx).GetMembers(models.GroupAccountants)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.Errorf("Accountants group not found, skipping closure notifications for campaign %s", campaign.ID)
			sentry.CaptureException(fmt.Errorf("accountants group missing while closing campaign %s", campaign.ID))
			return nil
		}
		return err
	}
	notificationRepo := repository.NewNotificationRepository(tx)
	for _, u := range accountants {
		n := &models.Notification{
			UserID:  u.ID,
			Message: fmt.Sprintf("Campaign '%s' has been closed and is ready for payment processing.", campaign.Name),
			Link:    fmt.Sprintf("/campaigns/%s", campaign.ID),
		}
		if err := notificationRepo.Create(n); err != nil {
			return err
		}
	}
	s.publish("campaign.closed", map[string]interface{}{"campaign": campaign.ID})
	return nil
}

// MessageSent notifies the recipient with a short excerpt of the content
func (s *NotificationService) MessageSent(tx *gorm.DB, m *models.Message) error {
	sender, err := repository.NewUserRepository(tx).GetByID(m.SenderID)
	if err != nil {
		return err
	}
	preview := m.Content
	if runes := []rune(preview); len(runes) > messagePreviewLen {
		preview = string(runes[:messagePreviewLen])
	}
	n := &models.Notification{
		UserID:  m.RecipientID,
		Message: fmt.Sprintf("New message from %s: %s", sender.Username, preview),
		Link:    "/messages",
	}
	return repository.NewNotificationRepository(tx).Create(n)
}

// loadAssignmentContext resolves the analyst's user account and the owning
// campaign. A nil user means the analyst reference was nulled out.
func (s *NotificationService) loadAssignmentContext(tx *gorm.DB, a *models.Assignment) (*models.User, *models.Campaign, error) {
	campaign, err := repository.NewCampaignRepository(tx).GetByID(a.CampaignID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load campaign for notification: %w", err)
	}
	if a.AnalystID == nil {
		return nil, campaign, nil
	}
	analyst, err := repository.NewAnalystRepository(tx).GetByID(*a.AnalystID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load analyst for notification: %w", err)
	}
	return &analyst.User, campaign, nil
}

func (s *NotificationService) publish(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	payload["at"] = time.Now().Format(time.RFC3339)
	if err := s.publisher.PublishEvent(event, payload); err != nil {
		logrus.Warnf("Failed to publish %s event: %v", event, err)
	}
}
