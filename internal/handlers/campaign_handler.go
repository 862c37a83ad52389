package handlers

import (
	"net/http"
	"strings"

	"github.com/mediawatch/report-tracking-backend/internal/models"
	"github.com/mediawatch/report-tracking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(db *gorm.DB, notifications *services.NotificationService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: services.NewCampaignService(db, notifications),
	}
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Create a campaign for a client with an optional set of stations
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.Campaign
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	campaign, err := h.campaignService.CreateCampaign(&req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// GetCampaigns godoc
// @Summary List campaigns
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Campaign
// @Failure 500 {object} map[string]interface{}
// @Router /api/campaigns [get]
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.GetCampaigns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaign godoc
// @Summary Get a campaign by ID
// @Description Get a campaign with its client, stations and monitoring periods
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.Campaign
// @Failure 404 {object} map[string]interface{}
// @Router /api/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaignByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Description Update a campaign. Moving the status to CLOSED notifies the accounting team.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.Campaign
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/campaigns/{id} [patch]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Param("id"), &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// DeleteCampaign godoc
// @Summary Delete a campaign
// @Description Delete a campaign along with its assignments and monitoring periods
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.campaignService.DeleteCampaign(c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAccountantCampaigns godoc
// @Summary List campaigns for the accounting team
// @Description List active and closed campaigns with the client name and the anticipated completion date
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AccountantCampaignSummary
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/accountant-campaigns [get]
func (h *CampaignHandler) GetAccountantCampaigns(c *gin.Context) {
	summaries, err := h.campaignService.AccountantSummaries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summaries)
}
