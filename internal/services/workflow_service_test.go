package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mediawatch/report-tracking-backend/internal/models"
)

func TestCreateNotifiesAnalyst(t *testing.T) {
	db := newTestDB(t)
	user, analyst := createAnalystUser(t, db, "dawit")
	campaign := createCampaign(t, db, "Spring Launch")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	due := time.Now().AddDate(0, 0, 7)
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		DueDate:    &due,
	}
	if err := workflow.Create(assignment); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if assignment.Status != models.AssignmentStatusWIP {
		t.Errorf("expected status WIP, got %s", assignment.Status)
	}

	notifications := notificationsFor(t, db, user.ID)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	n := notifications[0]
	if !strings.Contains(n.Message, "Spring Launch") {
		t.Errorf("notification message missing campaign name: %q", n.Message)
	}
	if n.Link != "/assignments/"+assignment.ID {
		t.Errorf("unexpected notification link: %q", n.Link)
	}
	if n.DeadlineDate == nil {
		t.Error("expected deadline date to carry the due date")
	}
	if n.Read {
		t.Error("new notification should be unread")
	}
}

func TestCreateOverdueAddsSecondNotification(t *testing.T) {
	db := newTestDB(t)
	user, analyst := createAnalystUser(t, db, "sara")
	campaign := createCampaign(t, db, "Winter Push")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		DueDate:    daysAgo(3),
	}
	if err := workflow.Create(assignment); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	notifications := notificationsFor(t, db, user.ID)
	if len(notifications) != 2 {
		t.Fatalf("expected creation plus overdue notifications, got %d", len(notifications))
	}
	var overdue bool
	for _, n := range notifications {
		if strings.Contains(n.Message, "overdue") {
			overdue = true
		}
	}
	if !overdue {
		t.Error("expected an overdue notification")
	}
}

func TestSubmitStampsSubmittedAtOnceAndNotifiesStaff(t *testing.T) {
	db := newTestDB(t)
	_, analyst := createAnalystUser(t, db, "meron")
	manager := createUserInGroup(t, db, "boss", models.GroupManagers)
	campaign := createCampaign(t, db, "Q3 Radio")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
	}
	if err := workflow.Create(assignment); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	assignment.Status = models.AssignmentStatusSubmitted
	if err := workflow.Save(assignment, models.AssignmentStatusWIP); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if assignment.SubmittedAt == nil {
		t.Fatal("expected submitted_at to be stamped")
	}
	firstStamp := *assignment.SubmittedAt

	managerNotifications := notificationsFor(t, db, manager.ID)
	if len(managerNotifications) != 1 {
		t.Fatalf("expected 1 staff notification, got %d", len(managerNotifications))
	}
	if !strings.Contains(managerNotifications[0].Message, "meron") {
		t.Errorf("staff notification missing analyst name: %q", managerNotifications[0].Message)
	}

	// A repeated submission must not move the original stamp
	time.Sleep(10 * time.Millisecond)
	if err := workflow.Save(assignment, models.AssignmentStatusWIP); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	var stored models.Assignment
	if err := db.First(&stored, "id = ?", assignment.ID).Error; err != nil {
		t.Fatalf("failed to reload assignment: %v", err)
	}
	if stored.SubmittedAt == nil || !stored.SubmittedAt.Equal(firstStamp) {
		t.Errorf("submitted_at moved: first %v, stored %v", firstStamp, stored.SubmittedAt)
	}
}

func TestApproveNotifiesAnalyst(t *testing.T) {
	db := newTestDB(t)
	user, analyst := createAnalystUser(t, db, "yonas")
	campaign := createCampaign(t, db, "Billboard Wave")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		Status:     models.AssignmentStatusSubmitted,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	assignment.Status = models.AssignmentStatusApproved
	if err := workflow.Save(assignment, models.AssignmentStatusSubmitted); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	notifications := notificationsFor(t, db, user.ID)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if !strings.Contains(notifications[0].Message, "approved") {
		t.Errorf("expected approval message, got %q", notifications[0].Message)
	}

	var stored models.Assignment
	db.First(&stored, "id = ?", assignment.ID)
	if stored.Status != models.AssignmentStatusApproved {
		t.Errorf("expected stored status APPROVED, got %s", stored.Status)
	}
}

func TestRejectReturnsAssignmentToWIP(t *testing.T) {
	db := newTestDB(t)
	user, analyst := createAnalystUser(t, db, "hana")
	campaign := createCampaign(t, db, "TV Sweep")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		Status:     models.AssignmentStatusSubmitted,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	assignment.Status = models.AssignmentStatusRejected
	if err := workflow.Save(assignment, models.AssignmentStatusSubmitted); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if assignment.Status != models.AssignmentStatusWIP {
		t.Errorf("expected in-memory status reset to WIP, got %s", assignment.Status)
	}

	var stored models.Assignment
	if err := db.First(&stored, "id = ?", assignment.ID).Error; err != nil {
		t.Fatalf("failed to reload assignment: %v", err)
	}
	if stored.Status != models.AssignmentStatusWIP {
		t.Errorf("expected stored status WIP after rejection, got %s", stored.Status)
	}

	notifications := notificationsFor(t, db, user.ID)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if !strings.Contains(notifications[0].Message, "rejected") {
		t.Errorf("expected rejection message, got %q", notifications[0].Message)
	}
}

func TestRejectingOverdueAssignmentSkipsOverdueNotice(t *testing.T) {
	db := newTestDB(t)
	user, analyst := createAnalystUser(t, db, "selam")
	campaign := createCampaign(t, db, "Past Due Review")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		Status:     models.AssignmentStatusSubmitted,
		DueDate:    daysAgo(3),
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	assignment.Status = models.AssignmentStatusRejected
	if err := workflow.Save(assignment, models.AssignmentStatusSubmitted); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The row is back in WIP, but this save was a rejection: only the
	// rejection notice fires, not an overdue one.
	notifications := notificationsFor(t, db, user.ID)
	if len(notifications) != 1 {
		t.Fatalf("expected only the rejection notification, got %d", len(notifications))
	}
	if !strings.Contains(notifications[0].Message, "rejected") {
		t.Errorf("expected rejection message, got %q", notifications[0].Message)
	}
}

func TestSpotCountMismatchRejectsSave(t *testing.T) {
	db := newTestDB(t)
	_, analyst := createAnalystUser(t, db, "bini")
	campaign := createCampaign(t, db, "Audit Run")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		Memo:       "original",
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	planned, missed, transmitted := 10, 3, 5
	assignment.PlannedSpots = &planned
	assignment.MissedSpots = &missed
	assignment.TransmittedSpots = &transmitted
	assignment.Memo = "changed"

	err := workflow.Save(assignment, models.AssignmentStatusWIP)
	if !errors.Is(err, models.ErrSpotCountMismatch) {
		t.Fatalf("expected spot count mismatch error, got %v", err)
	}

	var stored models.Assignment
	db.First(&stored, "id = ?", assignment.ID)
	if stored.Memo != "original" {
		t.Error("a rejected save must leave the row untouched")
	}
}

func TestOverdueRefiresOnEverySave(t *testing.T) {
	db := newTestDB(t)
	user, analyst := createAnalystUser(t, db, "lily")
	campaign := createCampaign(t, db, "Late Campaign")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		DueDate:    daysAgo(1),
	}
	if err := workflow.Create(assignment); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := len(notificationsFor(t, db, user.ID))

	if err := workflow.Save(assignment, models.AssignmentStatusWIP); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := workflow.Save(assignment, models.AssignmentStatusWIP); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	after := len(notificationsFor(t, db, user.ID))
	if after != before+2 {
		t.Errorf("expected an overdue notification per save, got %d new", after-before)
	}
}
