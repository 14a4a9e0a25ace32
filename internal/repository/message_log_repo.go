package repository

import (
	"business-admin-backend/internal/models"

	"gorm.io/gorm"
)

type MessageLogRepository struct {
	db *gorm.DB
}

func NewMessageLogRepository(db *gorm.DB) *MessageLogRepository {
	return &MessageLogRepository{db: db}
}

func (r *MessageLogRepository) Create(entry *models.MessageLog) error {
	return r.db.Create(entry).Error
}

func (r *MessageLogRepository) List() ([]models.MessageLog, error) {
	var entries []models.MessageLog
	err := r.db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
