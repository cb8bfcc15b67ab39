package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`                       // Primary key
	FirstName   string    `json:"first_name" db:"first_name"`       // Given name
	LastName    string    `json:"last_name" db:"last_name"`         // Family name
	Email       string    `json:"email" db:"email"`                 // Unique email address
	PhoneNumber string    `json:"phone_number" db:"phone_number"`   // Optional phone number
	DateOfBirth time.Time `json:"date_of_birth" db:"date_of_birth"` // Date of birth
	CreatedAt   time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`       // Last update timestamp
}
