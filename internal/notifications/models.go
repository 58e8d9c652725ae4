package notifications

import (
	"time"

	"github.com/google/uuid"
)

type Channel string

const ChannelSMS Channel = "SMS"

type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "SENT"
	DeliverySimulated DeliveryStatus = "SIMULATED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

// SentNotification records every outbound message for audit
type SentNotification struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Channel   Channel        `gorm:"not null" json:"channel"`
	Recipient string         `gorm:"not null" json:"recipient"`
	Content   string         `gorm:"not null" json:"content"`
	Status    DeliveryStatus `gorm:"not null" json:"status"`
	Error     string         `json:"error,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
}
