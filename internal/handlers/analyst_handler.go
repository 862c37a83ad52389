package handlers

import (
	"net/http"
	"strings"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"
	"github.com/mediawatch/report-tracking-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalystHandler struct {
	analystRepo *repository.AnalystRepository
	authService *auth.AuthService
}

func NewAnalystHandler(db *gorm.DB, authService *auth.AuthService) *AnalystHandler {
	return &AnalystHandler{
		analystRepo: repository.NewAnalystRepository(db),
		authService: authService,
	}
}

// CreateAnalyst godoc
// @Summary Create an analyst
// @Description Create a user account in the analyst role together with its analyst profile
// @Tags analysts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateAnalystRequest true "Create analyst request"
// @Success 201 {object} models.AnalystResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/analysts [post]
func (h *AnalystHandler) CreateAnalyst(c *gin.Context) {
	var req models.CreateAnalystRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	analyst, err := h.authService.CreateAnalystUser(&req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create analyst", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, &models.AnalystResponse{
		ID:       analyst.ID,
		Username: req.Username,
		UserID:   analyst.UserID,
	})
}

// GetAnalysts godoc
// @Summary List analysts
// @Tags analysts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AnalystResponse
// @Failure 500 {object} map[string]interface{}
// @Router /api/analysts [get]
func (h *AnalystHandler) GetAnalysts(c *gin.Context) {
	analysts, err := h.analystRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analysts", "details": err.Error()})
		return
	}

	responses := make([]*models.AnalystResponse, 0, len(analysts))
	for _, analyst := range analysts {
		responses = append(responses, toAnalystResponse(analyst))
	}

	c.JSON(http.StatusOK, responses)
}

// GetAnalyst godoc
// @Summary Get an analyst by ID
// @Tags analysts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Analyst ID"
// @Success 200 {object} models.AnalystResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/analysts/{id} [get]
func (h *AnalystHandler) GetAnalyst(c *gin.Context) {
	analyst, err := h.analystRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analyst not found"})
		return
	}

	c.JSON(http.StatusOK, toAnalystResponse(analyst))
}

func toAnalystResponse(analyst *models.Analyst) *models.AnalystResponse {
	return &models.AnalystResponse{
		ID:       analyst.ID,
		Username: analyst.User.Username,
		UserID:   analyst.UserID,
	}
}
