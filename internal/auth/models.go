package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleVictim   Role = "VICTIM"
	RoleOfficial Role = "OFFICIAL"
)

// User represents a registered portal user
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string         `gorm:"not null" json:"-"`
	FullName       string         `gorm:"not null" json:"full_name"`
	Role           Role           `gorm:"not null;default:'VICTIM'" json:"role"`
	Phone          string         `json:"phone"`
	AadhaarNumber  string         `json:"aadhaar_number"`
	Address        string         `json:"address"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	IsVerified     bool           `gorm:"default:false" json:"is_verified"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
