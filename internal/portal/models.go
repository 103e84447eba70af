package portal

import (
	"time"

	"github.com/google/uuid"
)

// Company is a client organisation integrating the verification API.
type Company struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// APIKey is a stored credential. Only the bcrypt hash and a lookup prefix
// are persisted; the raw key is shown to the caller exactly once at issue
// time.
type APIKey struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CompanyID uuid.UUID `json:"company_id" db:"company_id"`
	KeyHash   string    `json:"-" db:"key_hash"`
	Prefix    string    `json:"prefix" db:"prefix"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
