package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `gorm:"default:member" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
