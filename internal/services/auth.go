package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// UserByEmailReader looks users up by email.
type UserByEmailReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// CredentialByUserReader looks up the active credential of a user.
type CredentialByUserReader interface {
	GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.Credential, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService exchanges an email and password for a JWT token.
type AuthService struct {
	users       UserByEmailReader
	credentials CredentialByUserReader
	hasher      PasswordHasher
	jwt         JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users UserByEmailReader, credentials CredentialByUserReader, hasher PasswordHasher, jwt JWTGenerator) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		hasher:      hasher,
		jwt:         jwt,
	}
}

// Login authenticates a user and returns a JWT token.
// Unknown emails, missing credentials and wrong passwords all yield ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "email", email, "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "email", email)
		return "", ErrInvalidCredentials
	}

	credential, err := svc.credentials.GetActiveByUserID(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to get credential", "userID", user.ID, "err", err)
		return "", err
	}
	if credential == nil {
		logger.Log.Errorw("user has no active credential", "userID", user.ID)
		return "", ErrInvalidCredentials
	}

	if !svc.hasher.Verify(password, credential.PasswordHash) {
		logger.Log.Errorw("invalid credentials", "email", email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}
