package handlers

import (
	"net/http"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StationHandler struct {
	stationRepo *repository.StationRepository
}

func NewStationHandler(db *gorm.DB) *StationHandler {
	return &StationHandler{
		stationRepo: repository.NewStationRepository(db),
	}
}

// CreateStation godoc
// @Summary Create a new station
// @Tags stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateStationRequest true "Create station request"
// @Success 201 {object} models.Station
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/stations [post]
func (h *StationHandler) CreateStation(c *gin.Context) {
	var req models.CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	station := &models.Station{
		Name:     req.Name,
		Location: req.Location,
	}
	if err := h.stationRepo.Create(station); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create station", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, station)
}

// GetStations godoc
// @Summary List stations
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Station
// @Failure 500 {object} map[string]interface{}
// @Router /api/stations [get]
func (h *StationHandler) GetStations(c *gin.Context) {
	stations, err := h.stationRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stations)
}

// GetStation godoc
// @Summary Get a station by ID
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Success 200 {object} models.Station
// @Failure 404 {object} map[string]interface{}
// @Router /api/stations/{id} [get]
func (h *StationHandler) GetStation(c *gin.Context) {
	station, err := h.stationRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}

	c.JSON(http.StatusOK, station)
}

// UpdateStation godoc
// @Summary Update a station
// @Tags stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Param request body models.UpdateStationRequest true "Update station request"
// @Success 200 {object} models.Station
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/stations/{id} [put]
func (h *StationHandler) UpdateStation(c *gin.Context) {
	var req models.UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	station, err := h.stationRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}

	station.Name = req.Name
	station.Location = req.Location
	if err := h.stationRepo.Update(station); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update station", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, station)
}

// DeleteStation godoc
// @Summary Delete a station
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/stations/{id} [delete]
func (h *StationHandler) DeleteStation(c *gin.Context) {
	if _, err := h.stationRepo.GetByID(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		return
	}

	if err := h.stationRepo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete station", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
