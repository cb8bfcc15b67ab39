package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/services"
	"github.com/sbilibin2017/gw-assessment/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPassword = "Abcdef1!"

func TestCredentialService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockCredentialRepository(ctrl)
	users := services.NewMockUserGetter(ctrl)
	hasher := services.NewMockPasswordHasher(ctrl)
	svc := services.NewCredentialService(repo, users, hasher, nil)
	ctx := context.Background()
	userID := uuid.New()
	owner := &models.User{ID: userID}

	t.Run("success", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), userID).Return(owner, nil)
		repo.EXPECT().GetActiveByUserID(gomock.Any(), userID).Return(nil, nil)
		hasher.EXPECT().Hash(goodPassword).Return("digest", nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Credential) error {
			assert.Equal(t, "digest", c.PasswordHash)
			assert.False(t, c.IsDeleted())
			return nil
		})

		cred, err := svc.Create(ctx, uuid.Nil, userID, goodPassword)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, cred.ID)
		assert.Equal(t, userID, cred.UserID)
		assert.NotEqual(t, goodPassword, cred.PasswordHash)
	})

	t.Run("weak password is rejected before storage", func(t *testing.T) {
		_, err := svc.Create(ctx, uuid.New(), userID, "abcdefg1")
		assert.ErrorIs(t, err, services.ErrValidation)

		var vErr *validator.Error
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, validator.RuleUppercase, vErr.Rule)
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := svc.Create(ctx, uuid.Nil, uuid.Nil, goodPassword)
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("id exists even when deleted", func(t *testing.T) {
		id := uuid.New()
		existing := &models.Credential{ID: id, State: models.Deleted{At: time.Now()}}
		repo.EXPECT().GetByID(gomock.Any(), id).Return(existing, nil)

		_, err := svc.Create(ctx, id, userID, goodPassword)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("unknown user", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.Create(ctx, uuid.Nil, userID, goodPassword)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("user lookup error", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), userID).Return(nil, errors.New("db error"))

		_, err := svc.Create(ctx, uuid.Nil, userID, goodPassword)
		assert.EqualError(t, err, "db error")
	})

	t.Run("user already has an active credential", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), userID).Return(owner, nil)
		repo.EXPECT().GetActiveByUserID(gomock.Any(), userID).Return(&models.Credential{ID: uuid.New(), State: models.Active{}}, nil)

		_, err := svc.Create(ctx, uuid.Nil, userID, goodPassword)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("hash error", func(t *testing.T) {
		users.EXPECT().GetByID(gomock.Any(), userID).Return(owner, nil)
		repo.EXPECT().GetActiveByUserID(gomock.Any(), userID).Return(nil, nil)
		hasher.EXPECT().Hash(goodPassword).Return("", errors.New("hash error"))

		_, err := svc.Create(ctx, uuid.Nil, userID, goodPassword)
		assert.EqualError(t, err, "hash error")
	})
}

func TestCredentialService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockCredentialRepository(ctrl)
	hasher := services.NewMockPasswordHasher(ctrl)
	svc := services.NewCredentialService(repo, services.NewMockUserGetter(ctrl), hasher, nil)
	ctx := context.Background()
	id := uuid.New()

	stored := func() *models.Credential {
		return &models.Credential{ID: id, UserID: uuid.New(), PasswordHash: "old-digest", State: models.Active{}}
	}

	t.Run("success", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), id).Return(stored(), nil)
		hasher.EXPECT().Verify("OldPass1!", "old-digest").Return(true)
		hasher.EXPECT().Hash("NewPass1!").Return("new-digest", nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Credential) error {
			assert.Equal(t, "new-digest", c.PasswordHash)
			return nil
		})

		cred, err := svc.Update(ctx, id, "OldPass1!", "NewPass1!")
		require.NoError(t, err)
		assert.Equal(t, "new-digest", cred.PasswordHash)
	})

	t.Run("wrong old password leaves hash unchanged", func(t *testing.T) {
		current := stored()
		repo.EXPECT().GetByID(gomock.Any(), id).Return(current, nil)
		hasher.EXPECT().Verify("WrongPass1!", "old-digest").Return(false)

		_, err := svc.Update(ctx, id, "WrongPass1!", "NewPass1!")
		assert.ErrorIs(t, err, services.ErrUnauthorized)
		assert.Equal(t, "old-digest", current.PasswordHash)
	})

	t.Run("invalid new password", func(t *testing.T) {
		_, err := svc.Update(ctx, id, "OldPass1!", "short")
		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("deleted credential is not found", func(t *testing.T) {
		deleted := stored()
		deleted.MarkDeleted(time.Now())
		repo.EXPECT().GetByID(gomock.Any(), id).Return(deleted, nil)

		_, err := svc.Update(ctx, id, "OldPass1!", "NewPass1!")
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestCredentialService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockCredentialRepository(ctrl)
	svc := services.NewCredentialService(repo, services.NewMockUserGetter(ctrl), services.NewMockPasswordHasher(ctrl), nil)
	ctx := context.Background()
	id := uuid.New()

	var saved *models.Credential
	repo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Credential{ID: id, State: models.Active{}}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Credential) error {
		saved = c
		return nil
	})

	deleted, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted())
	require.NotNil(t, saved)
	assert.True(t, saved.IsDeleted())

	repo.EXPECT().GetByID(gomock.Any(), id).Return(saved, nil)
	_, err = svc.Delete(ctx, id)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.DeleteRecord(ctx, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCredentialService_GetByIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockCredentialRepository(ctrl)
	svc := services.NewCredentialService(repo, services.NewMockUserGetter(ctrl), services.NewMockPasswordHasher(ctrl), nil)
	ctx := context.Background()

	active := models.Credential{ID: uuid.New(), State: models.Active{}}
	deleted := models.Credential{ID: uuid.New(), State: models.Deleted{At: time.Now()}}
	ids := []uuid.UUID{active.ID, deleted.ID, uuid.New()}

	repo.EXPECT().GetByIDs(gomock.Any(), ids).Return([]models.Credential{active, deleted}, nil)

	found, err := svc.GetByIDs(ctx, ids)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, active.ID, found[0].ID)

	empty, err := svc.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
