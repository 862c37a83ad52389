package handlers

import (
	"net/http"

	"github.com/mediawatch/report-tracking-backend/internal/database/repository"
	"github.com/mediawatch/report-tracking-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClientHandler struct {
	clientRepo *repository.ClientRepository
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{
		clientRepo: repository.NewClientRepository(db),
	}
}

// CreateClient godoc
// @Summary Create a new client
// @Description Create a new advertiser client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateClientRequest true "Create client request"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req models.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	client := &models.Client{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.clientRepo.Create(client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Client
// @Failure 500 {object} map[string]interface{}
// @Router /api/clients [get]
func (h *ClientHandler) GetClients(c *gin.Context) {
	clients, err := h.clientRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get clients", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]interface{}
// @Router /api/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.clientRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body models.UpdateClientRequest true "Update client request"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req models.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	client, err := h.clientRepo.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	client.Name = req.Name
	client.Description = req.Description
	if err := h.clientRepo.Update(client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient godoc
// @Summary Delete a client
// @Description Delete a client and its campaigns
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	if _, err := h.clientRepo.GetByID(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		return
	}

	if err := h.clientRepo.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
