package services

import (
	"fmt"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"gorm.io/gorm"
)

// WorkflowService owns the assignment status state machine:
//
//	WIP -> SUBMITTED -> {APPROVED, REJECTED}
//
// A rejection returns the assignment to WIP so the analyst can revise and
// resubmit. Transition effects and the notification fanout run in the same
// transaction as the triggering write.
type WorkflowService struct {
	db            *gorm.DB
	notifications *NotificationService
	now           func() time.Time
}

func NewWorkflowService(db *gorm.DB, notifications *NotificationService) *WorkflowService {
	return &WorkflowService{db: db, notifications: notifications, now: time.Now}
}

// Create validates and persists a new assignment, then fans out the
// creation notification. An assignment created past its due date
// additionally produces an overdue notice.
func (s *WorkflowService) Create(assignment *models.Assignment) error {
	if err := assignment.ValidateSpots(); err != nil {
		return err
	}
	if assignment.Status == "" {
		assignment.Status = models.AssignmentStatusWIP
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewAssignmentRepository(tx).Create(assignment); err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		if err := s.notifications.AssignmentCreated(tx, assignment); err != nil {
			return err
		}
		if assignment.IsOverdue(s.now()) {
			if err := s.notifications.AssignmentOverdue(tx, assignment); err != nil {
				return err
			}
		}
		return nil
	})
}

// Save persists an updated assignment and applies transition effects when
// the status changed relative to prevStatus, the value read from the store
// in the same request. The spot-count invariant is enforced before any
// state changes; a violation leaves the row untouched.
func (s *WorkflowService) Save(assignment *models.Assignment, prevStatus string) error {
	if err := assignment.ValidateSpots(); err != nil {
		return err
	}
	// Evaluated against the saved status: a rejection save must not count
	// as overdue even though the row lands back in WIP.
	overdue := assignment.IsOverdue(s.now())
	return s.db.Transaction(func(tx *gorm.DB) error {
		assignmentRepo := repository.NewAssignmentRepository(tx)
		if err := assignmentRepo.Update(assignment); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}

		if assignment.Status != prevStatus {
			switch assignment.Status {
			case models.AssignmentStatusSubmitted:
				// Stamp submitted_at once; the conditional single-column
				// update keeps an existing stamp intact.
				now := s.now()
				if err := assignmentRepo.StampSubmittedAt(assignment.ID, now); err != nil {
					return err
				}
				if assignment.SubmittedAt == nil {
					assignment.SubmittedAt = &now
				}
				if err := s.notifications.AssignmentSubmitted(tx, assignment); err != nil {
					return err
				}
			case models.AssignmentStatusApproved:
				if err := s.notifications.AssignmentReviewed(tx, assignment, true); err != nil {
					return err
				}
			case models.AssignmentStatusRejected:
				if err := s.notifications.AssignmentReviewed(tx, assignment, false); err != nil {
					return err
				}
				// Returned for revision: REJECTED is transient, the row
				// lands back in WIP.
				if err := assignmentRepo.SetStatus(assignment.ID, models.AssignmentStatusWIP); err != nil {
					return err
				}
				assignment.Status = models.AssignmentStatusWIP
			}
		}

		// Overdue signal fires on every save of a WIP assignment past its
		// due date, not only on transitions.
		if overdue {
			if err := s.notifications.AssignmentOverdue(tx, assignment); err != nil {
				return err
			}
		}
		return nil
	})
}
