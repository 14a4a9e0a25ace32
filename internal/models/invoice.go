package models

import "time"

const (
	InvoiceStatusDraft = "Draft"
	InvoiceStatusSent  = "Sent"
)

type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InvoiceNumber string    `gorm:"uniqueIndex;not null" json:"invoice_number"`
	IssueDate     time.Time `json:"issue_date"`
	DueDate       time.Time `json:"due_date"`
	TotalAmount   string    `json:"total_amount"`
	Status        string    `gorm:"index;default:Draft" json:"status"`
	ClientID      uint      `gorm:"index" json:"client_id"`
	CreatedAt     time.Time `json:"created_at"`

	Client    Client     `json:"-"`
	LineItems []LineItem `gorm:"constraint:OnDelete:CASCADE" json:"line_items"`

	// ClientName is resolved from the joined Client row when the
	// aggregate is hydrated; it is not a column.
	ClientName string `gorm:"-" json:"client_name,omitempty"`
}

type LineItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
	InvoiceID   uint   `gorm:"index" json:"invoice_id"`
}
