package handler

import (
	"net/http"

	"business-admin-backend/internal/models"
	"business-admin-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	clients  *repository.ClientRepository
	tasks    *repository.TaskRepository
	invoices *repository.InvoiceRepository
}

func NewStatsHandler(
	clients *repository.ClientRepository,
	tasks *repository.TaskRepository,
	invoices *repository.InvoiceRepository,
) *StatsHandler {
	return &StatsHandler{clients: clients, tasks: tasks, invoices: invoices}
}

// Get tallies the dashboard counters. Outstanding invoices are those still
// in Draft or Sent.
func (h *StatsHandler) Get(c *gin.Context) {
	totalClients, err := h.clients.Count()
	if err != nil {
		h.fail(c, err)
		return
	}
	pendingClients, err := h.clients.CountByStatus("Pending")
	if err != nil {
		h.fail(c, err)
		return
	}
	totalTasks, err := h.tasks.Count()
	if err != nil {
		h.fail(c, err)
		return
	}
	highPriority, err := h.tasks.CountByPriority(models.PriorityHigh)
	if err != nil {
		h.fail(c, err)
		return
	}
	totalInvoices, err := h.invoices.Count()
	if err != nil {
		h.fail(c, err)
		return
	}
	outstanding, err := h.invoices.CountByStatuses([]string{models.InvoiceStatusDraft, models.InvoiceStatusSent})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_clients":        totalClients,
		"pending_clients":      pendingClients,
		"total_tasks":          totalTasks,
		"high_priority_tasks":  highPriority,
		"total_invoices":       totalInvoices,
		"outstanding_invoices": outstanding,
	})
}

func (h *StatsHandler) fail(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not compute stats"})
}
