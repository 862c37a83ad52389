package handlers

import (
	"net/http"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MonitoringPeriodHandler struct {
	periodRepo   *repository.MonitoringPeriodRepository
	campaignRepo *repository.CampaignRepository
}

func NewMonitoringPeriodHandler(db *gorm.DB) *MonitoringPeriodHandler {
	return &MonitoringPeriodHandler{
		periodRepo:   repository.NewMonitoringPeriodRepository(db),
		campaignRepo: repository.NewCampaignRepository(db),
	}
}

// CreateMonitoringPeriod godoc
// @Summary Create a monitoring period
// @Description Create a monitoring and authentication window for a campaign
// @Tags monitoring-periods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMonitoringPeriodRequest true "Create monitoring period request"
// @Success 201 {object} models.MonitoringPeriod
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/monitoring-periods [post]
func (h *MonitoringPeriodHandler) CreateMonitoringPeriod(c *gin.Context) {
	var req models.CreateMonitoringPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if _, err := h.campaignRepo.GetByID(req.CampaignID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign not found"})
		return
	}

	period := &models.MonitoringPeriod{
		CampaignID:          req.CampaignID,
		MonitoringStart:     req.MonitoringStart,
		MonitoringEnd:       req.MonitoringEnd,
		AuthenticationStart: req.AuthenticationStart,
		AuthenticationEnd:   req.AuthenticationEnd,
	}
	if err := h.periodRepo.Create(period); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create monitoring period", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, period)
}

// GetMonitoringPeriods godoc
// @Summary List monitoring periods
// @Tags monitoring-periods
// @Produce json
// @Security BearerAuth
// @Param campaign query string false "Filter by campaign ID"
// @Success 200 {array} models.MonitoringPeriod
// @Failure 500 {object} map[string]interface{}
// @Router /api/monitoring-periods [get]
func (h *MonitoringPeriodHandler) GetMonitoringPeriods(c *gin.Context) {
	var (
		periods []*models.MonitoringPeriod
		err     error
	)
	if campaignID := c.Query("campaign"); campaignID != "" {
		periods, err = h.periodRepo.GetByCampaignID(campaignID)
	} else {
		periods, err = h.periodRepo.GetAll()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get monitoring periods", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, periods)
}

// GetMonitoringPeriod godoc
// @Summary Get a monitoring period by ID
// @Tags monitoring-periods
// @Produce json
// @Security BearerAuth
// @Param id path string true "Monitoring period ID"
// @Success 200 {object} models.MonitoringPeriod
// @Failure 404 {object} map[string]interface{}
// @Router /api/monitoring-periods/{id} [get]
func (h *MonitoringPeriodHandler) GetMonitoringPeriod(c *gin.Context) {
	period, err := h.periodRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monitoring period not found"})
		return
	}

	c.JSON(http.StatusOK, period)
}

// UpdateMonitoringPeriod godoc
// @Summary Update a monitoring period
// @Tags monitoring-periods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Monitoring period ID"
// @Param request body models.UpdateMonitoringPeriodRequest true "Update monitoring period request"
// @Success 200 {object} models.MonitoringPeriod
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/monitoring-periods/{id} [put]
func (h *MonitoringPeriodHandler) UpdateMonitoringPeriod(c *gin.Context) {
	var req models.UpdateMonitoringPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	period, err := h.periodRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monitoring period not found"})
		return
	}

	period.MonitoringStart = req.MonitoringStart
	period.MonitoringEnd = req.MonitoringEnd
	period.AuthenticationStart = req.AuthenticationStart
	period.AuthenticationEnd = req.AuthenticationEnd
	if err := h.periodRepo.Update(period); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update monitoring period", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, period)
}

// DeleteMonitoringPeriod godoc
// @Summary Delete a monitoring period
// @Tags monitoring-periods
// @Produce json
// @Security BearerAuth
// @Param id path string true "Monitoring period ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/monitoring-periods/{id} [delete]
func (h *MonitoringPeriodHandler) DeleteMonitoringPeriod(c *gin.Context) {
	if _, err := h.periodRepo.GetByID(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monitoring period not found"})
		return
	}

	if err := h.periodRepo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete monitoring period", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
