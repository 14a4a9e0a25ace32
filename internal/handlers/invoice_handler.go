package handler

import (
	"errors"
	"net/http"
	"time"

	"business-admin-backend/internal/repository"
	invoicesvc "business-admin-backend/internal/services/invoice"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	invoices *repository.InvoiceRepository
	assembly *invoicesvc.Service
}

func NewInvoiceHandler(invoices *repository.InvoiceRepository, assembly *invoicesvc.Service) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, assembly: assembly}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.invoices.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not list invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload struct {
		InvoiceNumber string                     `json:"invoice_number"`
		ClientID      uint                       `json:"client_id"`
		IssueDate     string                     `json:"issue_date"`
		DueDate       string                     `json:"due_date"`
		Status        string                     `json:"status"`
		LineItems     []invoicesvc.LineItemInput `json:"line_items"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}

	input := invoicesvc.CreateInput{
		ClientID:      payload.ClientID,
		InvoiceNumber: payload.InvoiceNumber,
		Status:        payload.Status,
		LineItems:     payload.LineItems,
	}
	if payload.IssueDate != "" {
		issue, err := time.Parse(dateLayout, payload.IssueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid issue_date, expected yyyy-mm-dd"})
			return
		}
		input.IssueDate = issue
	}
	if payload.DueDate != "" {
		due, err := time.Parse(dateLayout, payload.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid due_date, expected yyyy-mm-dd"})
			return
		}
		input.DueDate = due
	}

	inv, err := h.assembly.Create(input)
	if err != nil {
		var subErr *invoicesvc.InvalidSubtotalError
		switch {
		case errors.Is(err, invoicesvc.ErrNumberRequired),
			errors.Is(err, invoicesvc.ErrNoLineItems),
			errors.Is(err, invoicesvc.ErrClientNotFound),
			errors.As(err, &subErr):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		case errors.Is(err, gorm.ErrDuplicatedKey):
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "invoice_number already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create invoice"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "invoice": inv})
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.invoices.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not delete invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "invoice deleted"})
}
