package cases

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending           Status = "PENDING"
	StatusUnderReview       Status = "UNDER_REVIEW"
	StatusApproved          Status = "APPROVED"
	StatusRejected          Status = "REJECTED"
	StatusPaymentProcessing Status = "PAYMENT_PROCESSING"
	StatusCompleted         Status = "COMPLETED"
)

type Stage string

const (
	StageFIR         Stage = "FIR"
	StageChargesheet Stage = "CHARGESHEET"
	StageConviction  Stage = "CONVICTION"
)

// Case represents a victim compensation case
type Case struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaseNumber string    `gorm:"uniqueIndex;not null" json:"case_number"`

	VictimName    string `gorm:"not null" json:"victim_name"`
	VictimAadhaar string `gorm:"not null" json:"victim_aadhaar"`
	VictimPhone   string `gorm:"not null" json:"victim_phone"`
	VictimEmail   string `json:"victim_email"`

	IncidentDescription string    `gorm:"not null" json:"incident_description"`
	IncidentDate        time.Time `gorm:"not null" json:"incident_date"`
	IncidentLocation    string    `gorm:"not null" json:"incident_location"`

	Stage              Stage   `gorm:"not null" json:"stage"`
	Status             Status  `gorm:"not null;default:'PENDING'" json:"status"`
	CompensationAmount float64 `gorm:"not null" json:"compensation_amount"`
	BankAccountNumber  string  `gorm:"not null" json:"bank_account_number"`
	IFSCCode           string  `gorm:"not null" json:"ifsc_code"`

	UploadedDocuments datatypes.JSON `json:"uploaded_documents"`

	CreatedByUserID       *uuid.UUID `gorm:"type:uuid" json:"created_by_user_id"`
	AssignedOfficerUserID *uuid.UUID `gorm:"type:uuid" json:"assigned_officer_user_id"`
	AssignedOfficer       string     `json:"assigned_officer"`
	Remarks               string     `json:"remarks"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CaseStatusHistory tracks status changes
type CaseStatusHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CaseID    uuid.UUID `gorm:"type:uuid;not null" json:"case_id"`
	Status    Status    `gorm:"not null" json:"status"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy uuid.UUID `gorm:"type:uuid" json:"changed_by"`
	Case      Case      `gorm:"foreignKey:CaseID" json:"-"`
}
