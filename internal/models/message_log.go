package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MessageKindText  = "text"
	MessageKindMedia = "media"
)

// MessageLog records one dispatch attempt against the messaging provider,
// successful or not.
type MessageLog struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind             string         `json:"kind"`
	To               string         `json:"to"`
	Body             string         `json:"body"`
	MediaURL         string         `json:"media_url,omitempty"`
	InvoiceID        *uint          `gorm:"index" json:"invoice_id,omitempty"`
	ProviderSID      string         `json:"provider_sid,omitempty"`
	ProviderStatus   string         `json:"provider_status,omitempty"`
	ProviderResponse datatypes.JSON `json:"provider_response,omitempty"`
	Succeeded        bool           `gorm:"index" json:"succeeded"`
	CreatedAt        time.Time      `json:"created_at"`
}
