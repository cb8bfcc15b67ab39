package models

import (
	"time"

	"github.com/google/uuid"
)

// CredentialState is either Active or Deleted.
type CredentialState interface {
	credentialState()
}

// Active marks a credential that can be looked up and used.
type Active struct{}

// Deleted marks a soft-deleted credential.
type Deleted struct {
	At time.Time
}

func (Active) credentialState()  {}
func (Deleted) credentialState() {}

// Credential holds the hashed secret of a user. A user owns at most one active credential.
type Credential struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	PasswordHash string
	State        CredentialState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDeleted reports whether the credential is soft-deleted.
func (c *Credential) IsDeleted() bool {
	_, ok := c.State.(Deleted)
	return ok
}

// MarkDeleted moves the credential into the Deleted state.
func (c *Credential) MarkDeleted(at time.Time) {
	c.State = Deleted{At: at}
}

// CredentialDB represents a user_credentials row.
type CredentialDB struct {
	ID           uuid.UUID  `db:"id"`            // Primary key
	UserID       uuid.UUID  `db:"user_id"`       // Owning user
	PasswordHash string     `db:"password_hash"` // bcrypt digest
	IsDeleted    bool       `db:"is_deleted"`    // Soft-delete flag
	DeletedAt    *time.Time `db:"deleted_at"`    // Soft-delete timestamp
	CreatedAt    time.Time  `db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time  `db:"updated_at"`    // Last update timestamp
}

// NewCredentialDB flattens the credential state into the flag and timestamp columns.
func NewCredentialDB(c *Credential) CredentialDB {
	row := CredentialDB{
		ID:           c.ID,
		UserID:       c.UserID,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if d, ok := c.State.(Deleted); ok {
		at := d.At
		row.IsDeleted = true
		row.DeletedAt = &at
	}
	return row
}

// ToCredential rebuilds the tagged state from the row. A set flag without a
// timestamp falls back to the update time.
func (row CredentialDB) ToCredential() *Credential {
	c := &Credential{
		ID:           row.ID,
		UserID:       row.UserID,
		PasswordHash: row.PasswordHash,
		State:        Active{},
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.IsDeleted {
		at := row.UpdatedAt
		if row.DeletedAt != nil {
			at = *row.DeletedAt
		}
		c.State = Deleted{At: at}
	}
	return c
}
