package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/validator"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=services

// UserRepository is the storage port for users.
// Lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	Count(ctx context.Context) (int, error)
}

// CredentialRevoker soft-deletes the credential of a user being removed.
// GetActiveByUserID returns (nil, nil) when the user has no active credential.
type CredentialRevoker interface {
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.Credential, error)
	Update(ctx context.Context, credential *models.Credential) error
}

// UserService validates and persists users.
type UserService struct {
	repo        UserRepository
	credentials CredentialRevoker
	events      *EventPublisher
}

// NewUserService creates a new UserService instance.
func NewUserService(repo UserRepository, credentials CredentialRevoker, events *EventPublisher) *UserService {
	return &UserService{repo: repo, credentials: credentials, events: events}
}

func validateUser(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	user.PhoneNumber = strings.TrimSpace(user.PhoneNumber)

	checks := []validator.Result{
		validator.CheckEmail(user.Email),
		validator.CheckName(user.FirstName).Named("first_name"),
		validator.CheckName(user.LastName).Named("last_name"),
	}
	if user.PhoneNumber != "" {
		checks = append(checks, validator.CheckPhoneNumber(user.PhoneNumber))
	}

	if err := validator.First(checks...).Err(); err != nil {
		return validationError(err)
	}
	return nil
}

// Create validates the user, checks that neither its id nor its email is taken and inserts it.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		logger.Log.Errorw("invalid user", "email", user.Email, "error", err)
		return nil, err
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	} else {
		existing, err := s.repo.GetByID(ctx, user.ID)
		if err != nil {
			logger.Log.Errorw("failed to check user exists", "userID", user.ID, "error", err)
			return nil, err
		}
		if existing != nil {
			logger.Log.Errorw("user already exists", "userID", user.ID)
			return nil, fmt.Errorf("%w: user %s", ErrConflict, user.ID)
		}
	}

	sameEmail, err := s.repo.GetByEmail(ctx, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to check email is free", "email", user.Email, "error", err)
		return nil, err
	}
	if sameEmail != nil {
		logger.Log.Errorw("email already registered", "email", user.Email)
		return nil, fmt.Errorf("%w: email %s", ErrConflict, user.Email)
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.repo.Insert(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user", "userID", user.ID, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EntityUser, user.ID, models.OperationCreated)
	return user, nil
}

// Update validates the user and overwrites the mutable fields of the stored record.
func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		logger.Log.Errorw("invalid user", "userID", user.ID, "error", err)
		return nil, err
	}

	existing, err := s.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if existing.Email != user.Email {
		owner, err := s.repo.GetByEmail(ctx, user.Email)
		if err != nil {
			logger.Log.Errorw("failed to check email is free", "email", user.Email, "error", err)
			return nil, err
		}
		if owner != nil && owner.ID != existing.ID {
			logger.Log.Errorw("email already registered", "email", user.Email)
			return nil, fmt.Errorf("%w: email %s", ErrConflict, user.Email)
		}
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.PhoneNumber = user.PhoneNumber
	existing.DateOfBirth = user.DateOfBirth
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		logger.Log.Errorw("failed to update user", "userID", existing.ID, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EntityUser, existing.ID, models.OperationUpdated)
	return existing, nil
}

// Delete soft-deletes the user's active credential, removes the user and returns the removed record.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	credential, err := s.credentials.GetActiveByUserID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user credential", "userID", id, "error", err)
		return nil, err
	}
	if credential != nil {
		now := time.Now().UTC()
		credential.MarkDeleted(now)
		credential.UpdatedAt = now
		if err := s.credentials.Update(ctx, credential); err != nil {
			logger.Log.Errorw("failed to revoke user credential", "userID", id, "credentialID", credential.ID, "error", err)
			return nil, err
		}
		s.events.Publish(ctx, models.EntityCredential, credential.ID, models.OperationDeleted)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete user", "userID", id, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EntityUser, id, models.OperationDeleted)
	return existing, nil
}

// GetByID returns the user or ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", id, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return user, nil
}

// GetByEmail returns the user registered with email or ErrNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user by email", "email", email, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user with email %s", ErrNotFound, email)
	}
	return user, nil
}

// List returns one page of users ordered by id.
func (s *UserService) List(ctx context.Context, pageToken, pageSize int) (*models.Page[models.User], error) {
	offset, err := pageOffset(pageToken, pageSize)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		logger.Log.Errorw("failed to list users", "offset", offset, "limit", pageSize, "error", err)
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count users", "error", err)
		return nil, err
	}

	if users == nil {
		users = []models.User{}
	}
	return &models.Page[models.User]{
		Items:      users,
		TotalItems: total,
		PageToken:  pageToken,
		PageSize:   pageSize,
	}, nil
}
