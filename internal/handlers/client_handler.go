package handler

import (
	"errors"
	"net/http"
	"strings"

	"business-admin-backend/internal/models"
	"business-admin-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClientHandler struct {
	clients *repository.ClientRepository
}

func NewClientHandler(clients *repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type clientPayload struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Phone  string `json:"phone"`
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not list clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.clients.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "client not found"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var payload clientPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "name is required"})
		return
	}

	client := &models.Client{Name: payload.Name, Status: payload.Status, Phone: payload.Phone}
	if err := h.clients.Create(client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create client"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "client": client})
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, err := h.clients.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "client not found"})
		return
	}

	var payload clientPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "name is required"})
		return
	}

	client.Name = payload.Name
	client.Status = payload.Status
	client.Phone = payload.Phone
	if err := h.clients.Update(client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "client": client})
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.clients.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not delete client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "client deleted"})
}
