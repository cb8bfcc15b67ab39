package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/password"
	"github.com/sbilibin2017/gw-assessment/internal/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := services.NewMockUserByEmailReader(ctrl)
	mockCredentials := services.NewMockCredentialByUserReader(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	svc := services.NewAuthService(mockUsers, mockCredentials, hasher, mockJWT)

	pass := "Secret1!"
	hashed, _ := hasher.Hash(pass)
	userID := uuid.New()
	user := &models.User{ID: userID, Email: "alice@example.com"}
	credential := &models.Credential{ID: uuid.New(), UserID: userID, PasswordHash: hashed, State: models.Active{}}

	tests := []struct {
		name          string
		email         string
		loginPass     string
		user          *models.User
		usersErr      error
		credential    *models.Credential
		credentialErr error
		expectJWT     string
		jwtErr        error
		wantErr       error
	}{
		{
			name:       "successful login",
			email:      "Alice@Example.com",
			loginPass:  pass,
			user:       user,
			credential: credential,
			expectJWT:  "token123",
		},
		{
			name:      "unknown email",
			email:     "bob@example.com",
			loginPass: pass,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:      "no active credential",
			email:     "alice@example.com",
			loginPass: pass,
			user:      user,
			wantErr:   services.ErrInvalidCredentials,
		},
		{
			name:       "invalid password",
			email:      "alice@example.com",
			loginPass:  "Wrong1!!",
			user:       user,
			credential: credential,
			wantErr:    services.ErrInvalidCredentials,
		},
		{
			name:      "users reader error",
			email:     "eve@example.com",
			loginPass: pass,
			usersErr:  errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:          "credential reader error",
			email:         "alice@example.com",
			loginPass:     pass,
			user:          user,
			credentialErr: errors.New("db error"),
			wantErr:       errors.New("db error"),
		},
		{
			name:       "JWT generation error",
			email:      "alice@example.com",
			loginPass:  pass,
			user:       user,
			credential: credential,
			jwtErr:     errors.New("jwt error"),
			wantErr:    errors.New("jwt error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers.EXPECT().
				GetByEmail(gomock.Any(), gomock.Any()).
				Return(tt.user, tt.usersErr)

			if tt.user != nil {
				mockCredentials.EXPECT().
					GetActiveByUserID(gomock.Any(), tt.user.ID).
					Return(tt.credential, tt.credentialErr)
			}

			if tt.credential != nil && tt.loginPass == pass {
				mockJWT.EXPECT().
					Generate(gomock.Any(), userID).
					Return(tt.expectJWT, tt.jwtErr)
			}

			token, err := svc.Login(context.Background(), tt.email, tt.loginPass)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectJWT, token)
			}
		})
	}
}

func TestAuthService_Login_ErrorsAreUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := services.NewMockUserByEmailReader(ctrl)
	svc := services.NewAuthService(mockUsers, services.NewMockCredentialByUserReader(ctrl), password.NewBcryptHasher(bcrypt.MinCost), services.NewMockJWTGenerator(ctrl))

	mockUsers.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)

	_, err := svc.Login(context.Background(), " nobody@example.com ", "whatever")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}
