package handlers

import (
	"net/http"

	"github.com/mediawatch/report-tracking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AdminHandler struct {
	maintenanceService *services.MaintenanceService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		maintenanceService: services.NewMaintenanceService(db),
	}
}

// PurgeDomainData godoc
// @Summary Purge all campaign-tracking data
// @Description Delete every campaign, assignment, notification and message while keeping user accounts. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.PurgeResult
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/admin/purge [post]
func (h *AdminHandler) PurgeDomainData(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	result, err := h.maintenanceService.PurgeDomainData()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purge data", "details": err.Error()})
		return
	}

	logrus.Warnf("Domain data purged by user %s", userID)
	c.JSON(http.StatusOK, result)
}
