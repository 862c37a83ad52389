package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mediawatch/report-tracking-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{
		exportService: services.NewExportService(db),
	}
}

// ExportEntity godoc
// @Summary Export an entity table
// @Description Download a snapshot of clients, stations, campaigns, analysts or assignments as CSV, JSON or XLSX
// @Tags export
// @Produce application/octet-stream
// @Security BearerAuth
// @Param entity path string true "Entity name" Enums(clients, stations, campaigns, analysts, assignments)
// @Param format query string false "Export format" Enums(csv, json, xlsx) default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/export/{entity} [get]
func (h *ExportHandler) ExportEntity(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	result, err := h.exportService.Export(c.Param("entity"), format)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export data", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// ExportCampaignExecution godoc
// @Summary Export a campaign execution report
// @Description Download assignment progress across campaigns, optionally filtered to specific clients
// @Tags export
// @Produce application/octet-stream
// @Security BearerAuth
// @Param clients query string false "Comma-separated client IDs"
// @Param format query string false "Export format" Enums(csv, json, xlsx) default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/export/campaign-execution [get]
func (h *ExportHandler) ExportCampaignExecution(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	result, err := h.exportService.ExportCampaignExecution(c.Query("clients"), format)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// ImportEntity godoc
// @Summary Import entity records from a file upload
// @Description Upload a CSV or JSON file of clients, stations or campaigns. Rows that fail validation are reported and the rest are created.
// @Tags export
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param entity path string true "Entity name" Enums(clients, stations, campaigns)
// @Param file formData file true "Snapshot file"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/import/{entity} [post]
func (h *ExportHandler) ImportEntity(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload", "details": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload", "details": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read upload", "details": err.Error()})
		return
	}

	result, err := h.exportService.Import(c.Param("entity"), fileHeader.Filename, data)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import data", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
