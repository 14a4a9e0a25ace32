package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"business-admin-backend/internal/models"
	"business-admin-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type TaskHandler struct {
	tasks *repository.TaskRepository
}

func NewTaskHandler(tasks *repository.TaskRepository) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskPayload struct {
	Name       string `json:"name"`
	DueDate    string `json:"due_date"`
	Priority   string `json:"priority"`
	AssignedTo string `json:"assigned_to"`
}

func (p *taskPayload) apply(task *models.Task) (string, bool) {
	if strings.TrimSpace(p.Name) == "" {
		return "name is required", false
	}
	task.Name = p.Name
	task.Priority = p.Priority
	task.AssignedTo = p.AssignedTo
	if p.DueDate != "" {
		due, err := time.Parse(dateLayout, p.DueDate)
		if err != nil {
			return "invalid due_date, expected yyyy-mm-dd", false
		}
		task.DueDate = due
	}
	return "", true
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var payload taskPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}

	var task models.Task
	if msg, ok := payload.apply(&task); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
		return
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}

	if err := h.tasks.Create(&task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create task"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "task": task})
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "task not found"})
		return
	}

	var payload taskPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}
	if msg, ok := payload.apply(task); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
		return
	}

	if err := h.tasks.Update(task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not update task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.tasks.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "task deleted"})
}
