package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/validator"
)

//go:generate mockgen -source=credentials.go -destination=credentials_mock.go -package=services

// CredentialRepository is the storage port for user credentials.
// GetByID and GetByIDs return soft-deleted records too; lookups return (nil, nil) when nothing matches.
type CredentialRepository interface {
	Insert(ctx context.Context, credential *models.Credential) error
	Update(ctx context.Context, credential *models.Credential) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Credential, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Credential, error)
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.Credential, error)
}

// UserGetter looks up the owner of a credential. GetByID returns (nil, nil) when nothing matches.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// PasswordHasher hashes secrets one way and verifies plaintext against a digest.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// CredentialService manages hashed user credentials with soft deletion.
type CredentialService struct {
	repo   CredentialRepository
	users  UserGetter
	hasher PasswordHasher
	events *EventPublisher
}

// NewCredentialService creates a new CredentialService instance.
func NewCredentialService(repo CredentialRepository, users UserGetter, hasher PasswordHasher, events *EventPublisher) *CredentialService {
	return &CredentialService{repo: repo, users: users, hasher: hasher, events: events}
}

// Create stores a hashed credential for userID. id may be uuid.Nil to have one generated.
func (s *CredentialService) Create(ctx context.Context, id, userID uuid.UUID, password string) (*models.Credential, error) {
	if userID == uuid.Nil {
		return nil, validationError(validator.Result{Field: "user_id", Rule: validator.RuleRequired}.Err())
	}
	if err := validator.CheckPassword(password).Err(); err != nil {
		logger.Log.Errorw("password rejected", "userID", userID, "error", err)
		return nil, validationError(err)
	}

	if id == uuid.Nil {
		id = uuid.New()
	} else {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			logger.Log.Errorw("failed to check credential exists", "credentialID", id, "error", err)
			return nil, err
		}
		if existing != nil {
			logger.Log.Errorw("credential already exists", "credentialID", id)
			return nil, fmt.Errorf("%w: credential %s", ErrConflict, id)
		}
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get credential owner", "userID", userID, "error", err)
		return nil, err
	}
	if owner == nil {
		logger.Log.Errorw("credential owner not found", "userID", userID)
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	owned, err := s.repo.GetActiveByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to check user credential", "userID", userID, "error", err)
		return nil, err
	}
	if owned != nil {
		logger.Log.Errorw("user already has a credential", "userID", userID)
		return nil, fmt.Errorf("%w: user %s already has a credential", ErrConflict, userID)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "userID", userID, "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	credential := &models.Credential{
		ID:           id,
		UserID:       userID,
		PasswordHash: hash,
		State:        models.Active{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, credential); err != nil {
		logger.Log.Errorw("failed to save credential", "credentialID", id, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EntityCredential, id, models.OperationCreated)
	return credential, nil
}

// Update replaces the password after oldPassword verifies against the stored hash.
func (s *CredentialService) Update(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) (*models.Credential, error) {
	if err := validator.CheckPassword(newPassword).Err(); err != nil {
		logger.Log.Errorw("password rejected", "credentialID", id, "error", err)
		return nil, validationError(err)
	}

	credential, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(oldPassword, credential.PasswordHash) {
		logger.Log.Errorw("incorrect old password", "credentialID", id)
		return nil, ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "credentialID", id, "error", err)
		return nil, err
	}

	updated := *credential
	updated.PasswordHash = hash
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		logger.Log.Errorw("failed to update credential", "credentialID", id, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EntityCredential, id, models.OperationUpdated)
	return &updated, nil
}

// Delete soft-deletes the active credential with the given id.
func (s *CredentialService) Delete(ctx context.Context, id uuid.UUID) (*models.Credential, error) {
	credential, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	credential.MarkDeleted(now)
	credential.UpdatedAt = now

	if err := s.repo.Update(ctx, credential); err != nil {
		logger.Log.Errorw("failed to delete credential", "credentialID", id, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EntityCredential, id, models.OperationDeleted)
	return credential, nil
}

// DeleteRecord soft-deletes the stored credential identified by credential.ID.
func (s *CredentialService) DeleteRecord(ctx context.Context, credential *models.Credential) (*models.Credential, error) {
	if credential == nil {
		return nil, fmt.Errorf("%w: credential", ErrNotFound)
	}
	return s.Delete(ctx, credential.ID)
}

// GetByID returns the active credential or ErrNotFound. Soft-deleted records count as absent.
func (s *CredentialService) GetByID(ctx context.Context, id uuid.UUID) (*models.Credential, error) {
	credential, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get credential", "credentialID", id, "error", err)
		return nil, err
	}
	if credential == nil || credential.IsDeleted() {
		return nil, fmt.Errorf("%w: credential %s", ErrNotFound, id)
	}
	return credential, nil
}

// GetByIDs returns the active credentials among ids, skipping missing and deleted ones.
func (s *CredentialService) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Credential, error) {
	if len(ids) == 0 {
		return []models.Credential{}, nil
	}

	found, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to get credentials", "count", len(ids), "error", err)
		return nil, err
	}

	active := make([]models.Credential, 0, len(found))
	for _, c := range found {
		if !c.IsDeleted() {
			active = append(active, c)
		}
	}
	return active, nil
}
