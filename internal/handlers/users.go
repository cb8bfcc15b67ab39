package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/middlewares"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/services"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// UserManager defines the user operations the handlers need.
type UserManager interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, pageToken, pageSize int) (*models.Page[models.User], error)
}

// UserRequest represents the JSON body for creating or updating a user
// swagger:model UserRequest
type UserRequest struct {
	// Optional client-chosen id, create only
	ID *uuid.UUID `json:"id,omitempty"`

	// First name
	// required: true
	// default: John
	FirstName string `json:"first_name"`

	// Last name
	// required: true
	// default: Doe
	LastName string `json:"last_name"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Phone number
	// default: +998901234567
	PhoneNumber string `json:"phone_number"`

	// Date of birth, YYYY-MM-DD
	// required: true
	// default: 1990-01-02
	DateOfBirth string `json:"date_of_birth"`
}

// UserResponse represents a user
// swagger:model UserResponse
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	DateOfBirth string    `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserPageResponse represents one page of users
// swagger:model UserPageResponse
type UserPageResponse struct {
	Items      []UserResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	PageToken  int            `json:"page_token"`
	PageSize   int            `json:"page_size"`
}

func (req UserRequest) toModel() (*models.User, error) {
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_birth must be YYYY-MM-DD", services.ErrValidation)
	}
	return &models.User{
		ID:          optionalID(req.ID),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: dob,
	}, nil
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		DateOfBirth: u.DateOfBirth.Format(dateLayout),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func newUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

// NewCreateUserHandler returns an HTTP handler that registers a user.
// @Summary Create user
// @Description Validate and store a new user. Email must be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param userRequest body handlers.UserRequest true "User"
// @Success 201 {object} handlers.UserResponse "User created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid user"
// @Failure 409 {object} handlers.ErrorResponse "Id or email already taken"
// @Router /users [post]
func NewCreateUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := req.toModel()
		if err != nil {
			writeError(w, err)
			return
		}

		user, err = svc.Create(r.Context(), user)
		if err != nil {
			writeError(w, err)
			return
		}

		created(w, r, user.ID, newUserResponse(user))
	}
}

// NewGetUserHandler returns an HTTP handler that fetches a user by id.
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{userID} [get]
func NewGetUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "userID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		user, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewGetCurrentUserHandler returns an HTTP handler that fetches the authenticated user.
// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.UserResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/me [get]
func NewGetCurrentUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := middlewares.UserIDFromContext(r.Context())
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewListUsersHandler returns an HTTP handler that lists users page by page,
// or looks one up when the email query parameter is set.
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page_token query int false "1-based page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param email query string false "Exact email lookup"
// @Success 200 {object} handlers.UserPageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid page"
// @Router /users [get]
func NewListUsersHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if email := r.URL.Query().Get("email"); email != "" {
			user, err := svc.GetByEmail(r.Context(), email)
			switch {
			case errors.Is(err, services.ErrNotFound):
				writeJSON(w, http.StatusOK, []UserResponse{})
			case err != nil:
				writeError(w, err)
			default:
				writeJSON(w, http.StatusOK, []UserResponse{newUserResponse(user)})
			}
			return
		}

		pageToken, pageSize, err := pageParams(r)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}

		page, err := svc.List(r.Context(), pageToken, pageSize)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, UserPageResponse{
			Items:      newUserResponses(page.Items),
			TotalItems: page.TotalItems,
			PageToken:  page.PageToken,
			PageSize:   page.PageSize,
		})
	}
}

// NewUpdateUserHandler returns an HTTP handler that replaces a user's fields.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param userRequest body handlers.UserRequest true "User"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid user"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the caller's account"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 409 {object} handlers.ErrorResponse "Email already taken"
// @Router /users/{userID} [put]
func NewUpdateUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "userID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := authorizeOwner(r, id); err != nil {
			writeError(w, err)
			return
		}

		var req UserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := req.toModel()
		if err != nil {
			writeError(w, err)
			return
		}
		user.ID = id

		user, err = svc.Update(r.Context(), user)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewDeleteUserHandler returns an HTTP handler that removes a user.
// @Summary Delete user
// @Tags users
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 204 "User deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Not the caller's account"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{userID} [delete]
func NewDeleteUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "userID")
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := authorizeOwner(r, id); err != nil {
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
