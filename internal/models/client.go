package models

import "time"

type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Status    string    `gorm:"index" json:"status"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"-"`
}
