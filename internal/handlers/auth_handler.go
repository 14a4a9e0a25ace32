package handler

import (
	"errors"
	"net/http"
	"strings"

	"business-admin-backend/internal/models"
	"business-admin-backend/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	users *repository.UserRepository
}

func NewAuthHandler(users *repository.UserRepository) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}

	user, err := h.users.GetByUsername(strings.TrimSpace(payload.Username))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid credentials"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid credentials"})
		return
	}

	sess := sessions.Default(c)
	sess.Set(SessionUserID, user.ID)
	sess.Set(SessionUsername, user.Username)
	sess.Set(SessionRole, user.Role)
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "logged out"})
}

// Register creates a new user. Admin-only; enforced by middleware.
func (h *AuthHandler) Register(c *gin.Context) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "username and password are required"})
		return
	}
	role := payload.Role
	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleAdmin && role != models.RoleMember {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "role must be admin or member"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not hash password"})
		return
	}

	user := &models.User{Username: username, PasswordHash: string(hash), Role: role}
	if err := h.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "could not create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "user": user})
}
