package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mediawatch/report-tracking-backend/internal/middleware"
	"github.com/mediawatch/report-tracking-backend/internal/models"
	"github.com/mediawatch/report-tracking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func assignmentRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	workflow := services.NewWorkflowService(db, services.NewNotificationService(nil))
	handler := NewAssignmentHandler(db, workflow)

	r := gin.New()
	api := r.Group("/api", authAs(db, userID))
	api.POST("/assignments", middleware.RequirePrivileged(), handler.CreateAssignment)
	api.POST("/assignments/bulk_create", middleware.RequirePrivileged(), handler.BulkCreateAssignments)
	api.PATCH("/assignments/:id", handler.UpdateAssignment)
	return r
}

func TestBulkCreateReturnsMultiStatusOnPartialFailure(t *testing.T) {
	db := newTestDB(t)
	manager := createUserInGroup(t, db, "manager", models.GroupManagers)
	_, analyst := createAnalystUser(t, db, "worker")
	campaign := createCampaign(t, db, "Bulk Campaign")
	station := &models.Station{Name: "Good FM"}
	if err := db.Create(station).Error; err != nil {
		t.Fatalf("failed to create station: %v", err)
	}

	r := assignmentRouter(db, manager.ID)
	w := doJSON(t, r, http.MethodPost, "/api/assignments/bulk_create", gin.H{
		"campaign": campaign.ID,
		"analyst":  analyst.ID,
		"stations": []string{station.ID, "bogus"},
	})

	if w.Code != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.BulkCreateAssignmentsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Created) != 1 || len(resp.Errors) != 1 {
		t.Errorf("expected 1 created and 1 error, got %d/%d", len(resp.Created), len(resp.Errors))
	}
}

func TestBulkCreateAllSucceedReturnsCreated(t *testing.T) {
	db := newTestDB(t)
	manager := createUserInGroup(t, db, "manager", models.GroupManagers)
	_, analyst := createAnalystUser(t, db, "worker")
	campaign := createCampaign(t, db, "Clean Bulk")
	station := &models.Station{Name: "Only FM"}
	if err := db.Create(station).Error; err != nil {
		t.Fatalf("failed to create station: %v", err)
	}

	r := assignmentRouter(db, manager.ID)
	w := doJSON(t, r, http.MethodPost, "/api/assignments/bulk_create", gin.H{
		"campaign": campaign.ID,
		"analyst":  analyst.ID,
		"stations": []string{station.ID},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalystCannotCreateAssignments(t *testing.T) {
	db := newTestDB(t)
	analystUser, analyst := createAnalystUser(t, db, "plain")
	campaign := createCampaign(t, db, "No Access")

	r := assignmentRouter(db, analystUser.ID)
	w := doJSON(t, r, http.MethodPost, "/api/assignments", gin.H{
		"campaign": campaign.ID,
		"analyst":  analyst.ID,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAnalystCanOnlyUpdateOwnAssignment(t *testing.T) {
	db := newTestDB(t)
	ownerUser, ownerAnalyst := createAnalystUser(t, db, "owner")
	otherUser, _ := createAnalystUser(t, db, "other")
	campaign := createCampaign(t, db, "Ownership")

	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &ownerAnalyst.ID,
		Status:     models.AssignmentStatusWIP,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	// The assigned analyst may submit
	r := assignmentRouter(db, ownerUser.ID)
	w := doJSON(t, r, http.MethodPatch, "/api/assignments/"+assignment.ID, gin.H{
		"status": models.AssignmentStatusSubmitted,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("owner update expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// A different analyst may not touch it
	r = assignmentRouter(db, otherUser.ID)
	w = doJSON(t, r, http.MethodPatch, "/api/assignments/"+assignment.ID, gin.H{
		"memo": "sneaky",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign update expected 403, got %d", w.Code)
	}
}

func TestManagerCanUpdateAnyAssignment(t *testing.T) {
	db := newTestDB(t)
	manager := createUserInGroup(t, db, "boss", models.GroupManagers)
	_, analyst := createAnalystUser(t, db, "assigned")
	campaign := createCampaign(t, db, "Managed")

	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &analyst.ID,
		Status:     models.AssignmentStatusSubmitted,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	r := assignmentRouter(db, manager.ID)
	w := doJSON(t, r, http.MethodPatch, "/api/assignments/"+assignment.ID, gin.H{
		"status":          models.AssignmentStatusRejected,
		"manager_comment": "numbers do not add up",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("manager update expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stored models.Assignment
	if err := db.First(&stored, "id = ?", assignment.ID).Error; err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if stored.Status != models.AssignmentStatusWIP {
		t.Errorf("rejected assignment should land back in WIP, got %s", stored.Status)
	}
}

func TestUpdateRejectsSpotMismatch(t *testing.T) {
	db := newTestDB(t)
	ownerUser, ownerAnalyst := createAnalystUser(t, db, "careful")
	campaign := createCampaign(t, db, "Arithmetic")

	assignment := &models.Assignment{
		CampaignID: campaign.ID,
		AnalystID:  &ownerAnalyst.ID,
		Status:     models.AssignmentStatusWIP,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}

	r := assignmentRouter(db, ownerUser.ID)
	w := doJSON(t, r, http.MethodPatch, "/api/assignments/"+assignment.ID, gin.H{
		"planned_spots":     10,
		"missed_spots":      5,
		"transmitted_spots": 4,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for spot mismatch, got %d", w.Code)
	}
}
