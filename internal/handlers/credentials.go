package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/models"
)

//go:generate mockgen -source=credentials.go -destination=credentials_mock.go -package=handlers

// CredentialManager defines the credential operations the handlers need.
type CredentialManager interface {
	Create(ctx context.Context, id, userID uuid.UUID, password string) (*models.Credential, error)
	Update(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) (*models.Credential, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Credential, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Credential, error)
}

// CreateCredentialRequest represents the JSON body for creating a credential
// swagger:model CreateCredentialRequest
type CreateCredentialRequest struct {
	// Optional client-chosen id
	ID *uuid.UUID `json:"id,omitempty"`

	// Owner
	// required: true
	UserID uuid.UUID `json:"user_id"`

	// Password
	// required: true
	// default: Secret1!
	Password string `json:"password"`
}

// UpdatePasswordRequest represents the JSON body for a password change
// swagger:model UpdatePasswordRequest
type UpdatePasswordRequest struct {
	// required: true
	OldPassword string `json:"old_password"`

	// required: true
	NewPassword string `json:"new_password"`
}

// CredentialResponse represents a credential without its secret
// swagger:model CredentialResponse
type CredentialResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCredentialResponse(c *models.Credential) CredentialResponse {
	return CredentialResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCreateCredentialHandler returns an HTTP handler that stores a hashed credential.
// @Summary Create credential
// @Description Hash and store the password of a user. A user has at most one active credential.
// @Tags credentials
// @Accept json
// @Produce json
// @Param credentialRequest body handlers.CreateCredentialRequest true "Credential"
// @Success 201 {object} handlers.CredentialResponse "Credential created"
// @Failure 400 {object} handlers.ErrorResponse "Weak password or invalid body"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Credential already exists"
// @Router /credentials [post]
func NewCreateCredentialHandler(svc CredentialManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCredentialRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		credential, err := svc.Create(r.Context(), optionalID(req.ID), req.UserID, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		created(w, r, credential.ID, newCredentialResponse(credential))
	}
}

// NewGetCredentialHandler returns an HTTP handler that fetches an active credential.
// @Summary Get credential
// @Tags credentials
// @Produce json
// @Security BearerAuth
// @Param credentialID path string true "Credential ID"
// @Success 200 {object} handlers.CredentialResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 404 {object} handlers.ErrorResponse "Credential not found"
// @Router /credentials/{credentialID} [get]
func NewGetCredentialHandler(svc CredentialManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "credentialID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		credential, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newCredentialResponse(credential))
	}
}

// NewListCredentialsHandler returns an HTTP handler that fetches the active credentials among ids.
// @Summary Get credentials by ids
// @Tags credentials
// @Produce json
// @Security BearerAuth
// @Param ids query string true "Comma separated credential ids"
// @Success 200 {array} handlers.CredentialResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Router /credentials [get]
func NewListCredentialsHandler(svc CredentialManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ids []uuid.UUID
		for _, raw := range strings.Split(r.URL.Query().Get("ids"), ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				writeErrorMessage(w, http.StatusBadRequest, "invalid ids")
				return
			}
			ids = append(ids, id)
		}

		credentials, err := svc.GetByIDs(r.Context(), ids)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]CredentialResponse, 0, len(credentials))
		for i := range credentials {
			out = append(out, newCredentialResponse(&credentials[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// NewUpdatePasswordHandler returns an HTTP handler that changes a credential's password.
// @Summary Change password
// @Tags credentials
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param credentialID path string true "Credential ID"
// @Param passwordRequest body handlers.UpdatePasswordRequest true "Passwords"
// @Success 200 {object} handlers.CredentialResponse
// @Failure 400 {object} handlers.ErrorResponse "Weak password or invalid body"
// @Failure 401 {object} handlers.ErrorResponse "Incorrect old password"
// @Failure 403 {object} handlers.ErrorResponse "Credential of another user"
// @Failure 404 {object} handlers.ErrorResponse "Credential not found"
// @Router /credentials/{credentialID}/password [put]
func NewUpdatePasswordHandler(svc CredentialManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "credentialID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		var req UpdatePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := authorizeCredentialOwner(r, svc, id); err != nil {
			writeError(w, err)
			return
		}

		credential, err := svc.Update(r.Context(), id, req.OldPassword, req.NewPassword)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newCredentialResponse(credential))
	}
}

// NewDeleteCredentialHandler returns an HTTP handler that soft-deletes a credential.
// @Summary Delete credential
// @Tags credentials
// @Security BearerAuth
// @Param credentialID path string true "Credential ID"
// @Success 204 "Credential deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 403 {object} handlers.ErrorResponse "Credential of another user"
// @Failure 404 {object} handlers.ErrorResponse "Credential not found"
// @Router /credentials/{credentialID} [delete]
func NewDeleteCredentialHandler(svc CredentialManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "credentialID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := authorizeCredentialOwner(r, svc, id); err != nil {
			writeError(w, err)
			return
		}

		if _, err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// authorizeCredentialOwner loads the active credential and checks it belongs to the caller.
func authorizeCredentialOwner(r *http.Request, svc CredentialManager, id uuid.UUID) error {
	credential, err := svc.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	return authorizeOwner(r, credential.UserID)
}
