package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// SessionState is the persisted client-side session of one server.
// At most one row exists per server.
type SessionState struct {
	BaseModel
	Server        string    `json:"server" gorm:"uniqueIndex;not null"`
	Authenticated bool      `json:"authenticated" gorm:"not null;default:false"`
	UserType      string    `json:"user_type"` // "Voter" or "ElectionManager"
	Subject       string    `json:"subject"`
	ExpiresAt     time.Time `json:"expires_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
