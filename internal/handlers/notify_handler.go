package handler

import (
	"errors"
	"fmt"
	"net/http"

	"business-admin-backend/internal/services/notify"
	"business-admin-backend/internal/twilio"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotifyHandler struct {
	notify *notify.Service
}

func NewNotifyHandler(svc *notify.Service) *NotifyHandler {
	return &NotifyHandler{notify: svc}
}

func (h *NotifyHandler) SendWhatsApp(c *gin.Context) {
	var payload struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}

	entry, err := h.notify.SendText(c.Request.Context(), payload.Phone, payload.Message)
	if err != nil {
		switch {
		case errors.Is(err, notify.ErrPhoneRequired), errors.Is(err, notify.ErrBodyRequired):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": deliveryMessage(err)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "sid": entry.ProviderSID})
}

func (h *NotifyHandler) SendInvoice(c *gin.Context) {
	id, ok := parseID(c, "invoice_id")
	if !ok {
		return
	}

	inv, entry, err := h.notify.SendInvoice(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "invoice not found"})
		case errors.Is(err, notify.ErrNoPhone):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": deliveryMessage(err)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "invoice": inv, "sid": entry.ProviderSID})
}

func (h *NotifyHandler) ListMessages(c *gin.Context) {
	entries, err := h.notify.ListMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// deliveryMessage surfaces the provider status code when the failure came
// back from the messaging API.
func deliveryMessage(err error) string {
	var apiErr *twilio.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("message delivery failed (provider status %d)", apiErr.StatusCode)
	}
	return err.Error()
}
