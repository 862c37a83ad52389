package services

import (
	"testing"

	"github.com/mediawatch/report-tracking-backend/internal/models"
)

func TestBulkCreateKeepsSuccessesOnPartialFailure(t *testing.T) {
	db := newTestDB(t)
	_, analyst := createAnalystUser(t, db, "tigist")
	campaign := createCampaign(t, db, "Multi Station")
	s1 := createStation(t, db, "Radio A")
	s2 := createStation(t, db, "Radio B")

	service := NewAssignmentService(db, NewWorkflowService(db, NewNotificationService(nil)))
	resp, err := service.BulkCreate(&models.BulkCreateAssignmentsRequest{
		CampaignID: campaign.ID,
		AnalystID:  analyst.ID,
		StationIDs: []string{s1.ID, "missing-station", s2.ID},
	})
	if err != nil {
		t.Fatalf("BulkCreate failed: %v", err)
	}

	if len(resp.Created) != 2 {
		t.Errorf("expected 2 created assignments, got %d", len(resp.Created))
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(resp.Errors))
	}
	if resp.Errors[0].StationID != "missing-station" {
		t.Errorf("error should name the failing station, got %q", resp.Errors[0].StationID)
	}

	var count int64
	db.Model(&models.Assignment{}).Count(&count)
	if count != 2 {
		t.Errorf("successful rows must persist despite the failure, got %d", count)
	}
}

func TestBulkCreateRejectsUnknownCampaign(t *testing.T) {
	db := newTestDB(t)
	_, analyst := createAnalystUser(t, db, "selam")
	station := createStation(t, db, "Radio C")

	service := NewAssignmentService(db, NewWorkflowService(db, NewNotificationService(nil)))
	if _, err := service.BulkCreate(&models.BulkCreateAssignmentsRequest{
		CampaignID: "missing",
		AnalystID:  analyst.ID,
		StationIDs: []string{station.ID},
	}); err == nil {
		t.Fatal("expected error for unknown campaign")
	}
}

func TestUpdateAssignmentMergesPartialFields(t *testing.T) {
	db := newTestDB(t)
	_, analyst := createAnalystUser(t, db, "girma")
	campaign := createCampaign(t, db, "Patch Test")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	service := NewAssignmentService(db, workflow)
	created, err := service.CreateAssignment(&models.CreateAssignmentRequest{
		CampaignID: campaign.ID,
		AnalystID:  analyst.ID,
		Memo:       "keep me",
	})
	if err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}

	planned, missed, transmitted := 12, 2, 10
	updated, err := service.UpdateAssignment(created.ID, &models.UpdateAssignmentRequest{
		PlannedSpots:     &planned,
		MissedSpots:      &missed,
		TransmittedSpots: &transmitted,
	})
	if err != nil {
		t.Fatalf("UpdateAssignment failed: %v", err)
	}
	if updated.Memo != "keep me" {
		t.Error("fields absent from the patch must be preserved")
	}
	if updated.PlannedSpots == nil || *updated.PlannedSpots != 12 {
		t.Error("patched spot counts not applied")
	}
	if updated.Status != models.AssignmentStatusWIP {
		t.Errorf("status should be unchanged, got %s", updated.Status)
	}
}

func TestGetAssignmentsFilterByAnalyst(t *testing.T) {
	db := newTestDB(t)
	_, analystA := createAnalystUser(t, db, "first")
	_, analystB := createAnalystUser(t, db, "second")
	campaign := createCampaign(t, db, "Filter Test")

	workflow := NewWorkflowService(db, NewNotificationService(nil))
	service := NewAssignmentService(db, workflow)
	for _, analystID := range []string{analystA.ID, analystA.ID, analystB.ID} {
		if _, err := service.CreateAssignment(&models.CreateAssignmentRequest{
			CampaignID: campaign.ID,
			AnalystID:  analystID,
		}); err != nil {
			t.Fatalf("CreateAssignment failed: %v", err)
		}
	}

	mine, err := service.GetAssignments(analystA.ID)
	if err != nil {
		t.Fatalf("GetAssignments failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 assignments for analyst A, got %d", len(mine))
	}

	all, err := service.GetAssignments("")
	if err != nil {
		t.Fatalf("GetAssignments failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 assignments in total, got %d", len(all))
	}
}
