package grievances

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fairclaim/portal-backend/internal/classifier"
)

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
	StatusEscalated  Status = "ESCALATED"
)

// Grievance represents a complaint raised against a case
type Grievance struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GrievanceNumber string    `gorm:"uniqueIndex;not null" json:"grievance_number"`

	CaseID          uuid.UUID  `gorm:"type:uuid;not null" json:"case_id"`
	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Category    string `gorm:"not null" json:"category"`

	Priority classifier.Priority `gorm:"not null;default:'MEDIUM'" json:"priority"`
	Status   Status              `gorm:"not null;default:'OPEN'" json:"status"`

	ContactName  string `gorm:"not null" json:"contact_name"`
	ContactPhone string `gorm:"not null" json:"contact_phone"`
	ContactEmail string `json:"contact_email"`

	ResolutionNotes string     `json:"resolution_notes"`
	ResolvedAt      *time.Time `json:"resolved_at"`
	ResolvedBy      string     `json:"resolved_by"`

	IsEscalated bool `gorm:"default:false" json:"is_escalated"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
