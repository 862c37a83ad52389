package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mediawatch/report-tracking-backend/internal/middleware"
	"github.com/mediawatch/report-tracking-backend/internal/models"
	"github.com/mediawatch/report-tracking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(db *gorm.DB, workflow *services.WorkflowService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: services.NewAssignmentService(db, workflow),
	}
}

// CreateAssignment godoc
// @Summary Create an assignment
// @Description Assign an analyst to monitor a station for a campaign. The analyst is notified.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateAssignmentRequest true "Create assignment request"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/assignments [post]
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req models.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(&req)
	if err != nil {
		if errors.Is(err, models.ErrSpotCountMismatch) || strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// BulkCreateAssignments godoc
// @Summary Create assignments for several stations at once
// @Description Create one assignment per station for the same campaign and analyst. Failures are reported per station; successfully created assignments are kept.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BulkCreateAssignmentsRequest true "Bulk create request"
// @Success 201 {object} models.BulkCreateAssignmentsResponse
// @Success 207 {object} models.BulkCreateAssignmentsResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/assignments/bulk_create [post]
func (h *AssignmentHandler) BulkCreateAssignments(c *gin.Context) {
	var req models.BulkCreateAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resp, err := h.assignmentService.BulkCreate(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(resp.Errors) > 0 {
		if len(resp.Created) > 0 {
			c.JSON(http.StatusMultiStatus, resp)
		} else {
			c.JSON(http.StatusBadRequest, resp)
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetAssignments godoc
// @Summary List assignments
// @Description List assignments, optionally filtered to a single analyst
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param analyst query string false "Filter by analyst ID"
// @Success 200 {array} models.Assignment
// @Failure 500 {object} map[string]interface{}
// @Router /api/assignments [get]
func (h *AssignmentHandler) GetAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.GetAssignments(c.Query("analyst"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get assignments", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// GetAssignment godoc
// @Summary Get an assignment by ID
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.Assignment
// @Failure 404 {object} map[string]interface{}
// @Router /api/assignments/{id} [get]
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignmentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// UpdateAssignment godoc
// @Summary Update an assignment
// @Description Update an assignment. Analysts may only update their own assignments; admins and managers may update any. Status transitions trigger notifications, and a rejected assignment is returned to the analyst as work in progress.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Param request body models.UpdateAssignmentRequest true "Update assignment request"
// @Success 200 {object} models.Assignment
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/assignments/{id} [patch]
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var req models.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	assignment, err := h.assignmentService.GetAssignmentByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	if !h.canModify(c, assignment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own assignments"})
		return
	}

	updated, err := h.assignmentService.UpdateAssignment(assignment.ID, &req)
	if err != nil {
		if errors.Is(err, models.ErrSpotCountMismatch) || strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update assignment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAssignment godoc
// @Summary Delete an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/assignments/{id} [delete]
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if _, err := h.assignmentService.GetAssignmentByID(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}

	if err := h.assignmentService.DeleteAssignment(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assignment", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// canModify reports whether the caller may modify the assignment. Admins and
// managers can modify any assignment, analysts only the ones assigned to
// their own profile.
func (h *AssignmentHandler) canModify(c *gin.Context, assignment *models.Assignment) bool {
	if middleware.CurrentRole(c).IsPrivileged() {
		return true
	}
	user := middleware.CurrentUser(c)
	if user.Analyst == nil || assignment.AnalystID == nil {
		return false
	}
	return *assignment.AnalystID == user.Analyst.ID
}
