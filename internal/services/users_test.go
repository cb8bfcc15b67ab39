package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser() *models.User {
	return &models.User{
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "John.Doe@Example.com ",
		PhoneNumber: "+998901234567",
		DateOfBirth: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockUserRepository(ctrl)
	svc := services.NewUserService(repo, services.NewMockCredentialRevoker(ctrl), nil)
	ctx := context.Background()

	t.Run("generates id and normalizes email", func(t *testing.T) {
		repo.EXPECT().GetByEmail(gomock.Any(), "john.doe@example.com").Return(nil, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		user, err := svc.Create(ctx, newUser())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "john.doe@example.com", user.Email)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	})

	t.Run("explicit id already taken", func(t *testing.T) {
		u := newUser()
		u.ID = uuid.New()
		repo.EXPECT().GetByID(gomock.Any(), u.ID).Return(&models.User{ID: u.ID}, nil)

		_, err := svc.Create(ctx, u)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("email already registered", func(t *testing.T) {
		repo.EXPECT().GetByEmail(gomock.Any(), "john.doe@example.com").Return(&models.User{ID: uuid.New()}, nil)

		_, err := svc.Create(ctx, newUser())
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("invalid name", func(t *testing.T) {
		u := newUser()
		u.FirstName = "J0hn"

		_, err := svc.Create(ctx, u)
		assert.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, err.Error(), "first_name")
	})

	t.Run("empty phone is allowed", func(t *testing.T) {
		u := newUser()
		u.PhoneNumber = ""
		repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Create(ctx, u)
		assert.NoError(t, err)
	})

	t.Run("insert error", func(t *testing.T) {
		repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(nil, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		_, err := svc.Create(ctx, newUser())
		assert.EqualError(t, err, "db error")
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockUserRepository(ctrl)
	svc := services.NewUserService(repo, services.NewMockCredentialRevoker(ctrl), nil)
	ctx := context.Background()
	id := uuid.New()

	t.Run("not found", func(t *testing.T) {
		u := newUser()
		u.ID = id
		repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.Update(ctx, u)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("email owned by another user", func(t *testing.T) {
		u := newUser()
		u.ID = id
		u.Email = "other@example.com"
		repo.EXPECT().GetByID(gomock.Any(), id).Return(&models.User{ID: id, Email: "john.doe@example.com"}, nil)
		repo.EXPECT().GetByEmail(gomock.Any(), "other@example.com").Return(&models.User{ID: uuid.New()}, nil)

		_, err := svc.Update(ctx, u)
		assert.ErrorIs(t, err, services.ErrConflict)
	})

	t.Run("updates fields", func(t *testing.T) {
		created := time.Now().Add(-time.Hour).UTC()
		u := newUser()
		u.ID = id
		u.LastName = "Smith"
		repo.EXPECT().GetByID(gomock.Any(), id).Return(&models.User{ID: id, Email: "john.doe@example.com", CreatedAt: created}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, stored *models.User) error {
			assert.Equal(t, "Smith", stored.LastName)
			assert.Equal(t, created, stored.CreatedAt)
			assert.True(t, stored.UpdatedAt.After(created))
			return nil
		})

		updated, err := svc.Update(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, "Smith", updated.LastName)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockUserRepository(ctrl)
	credentials := services.NewMockCredentialRevoker(ctrl)
	svc := services.NewUserService(repo, credentials, nil)
	ctx := context.Background()
	id := uuid.New()

	t.Run("revokes active credential", func(t *testing.T) {
		credentialID := uuid.New()
		repo.EXPECT().GetByID(gomock.Any(), id).Return(&models.User{ID: id}, nil)
		credentials.EXPECT().GetActiveByUserID(gomock.Any(), id).
			Return(&models.Credential{ID: credentialID, UserID: id, State: models.Active{}}, nil)
		credentials.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Credential) error {
			assert.Equal(t, credentialID, c.ID)
			assert.True(t, c.IsDeleted())
			return nil
		})
		repo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		deleted, err := svc.Delete(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, deleted.ID)
	})

	t.Run("no credential", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), id).Return(&models.User{ID: id}, nil)
		credentials.EXPECT().GetActiveByUserID(gomock.Any(), id).Return(nil, nil)
		repo.EXPECT().Delete(gomock.Any(), id).Return(nil)

		_, err := svc.Delete(ctx, id)
		require.NoError(t, err)
	})

	t.Run("revoke error keeps the user", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), id).Return(&models.User{ID: id}, nil)
		credentials.EXPECT().GetActiveByUserID(gomock.Any(), id).
			Return(&models.Credential{ID: uuid.New(), UserID: id, State: models.Active{}}, nil)
		credentials.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		_, err := svc.Delete(ctx, id)
		assert.EqualError(t, err, "db error")
	})

	t.Run("missing", func(t *testing.T) {
		repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

		_, err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, services.ErrNotFound)
	})
}

func TestUserService_GetByEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockUserRepository(ctrl)
	svc := services.NewUserService(repo, services.NewMockCredentialRevoker(ctrl), nil)

	repo.EXPECT().GetByEmail(gomock.Any(), "john@example.com").Return(&models.User{Email: "john@example.com"}, nil)
	user, err := svc.GetByEmail(context.Background(), " John@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", user.Email)

	repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, nil)
	_, err = svc.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUserService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := services.NewMockUserRepository(ctrl)
	svc := services.NewUserService(repo, services.NewMockCredentialRevoker(ctrl), nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		pageToken int
		pageSize  int
	}{
		{name: "zero token", pageToken: 0, pageSize: 10},
		{name: "negative token", pageToken: -1, pageSize: 10},
		{name: "zero size", pageToken: 1, pageSize: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(ctx, tt.pageToken, tt.pageSize)
			assert.ErrorIs(t, err, services.ErrInvalidPage)
			assert.ErrorIs(t, err, services.ErrValidation)
		})
	}

	t.Run("second page", func(t *testing.T) {
		users := []models.User{{ID: uuid.New()}, {ID: uuid.New()}}
		repo.EXPECT().List(gomock.Any(), 2, 2).Return(users, nil)
		repo.EXPECT().Count(gomock.Any()).Return(5, nil)

		page, err := svc.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 5, page.TotalItems)
		assert.Equal(t, 2, page.PageToken)
		assert.Equal(t, 2, page.PageSize)
	})

	t.Run("beyond last page", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any(), 100, 10).Return(nil, nil)
		repo.EXPECT().Count(gomock.Any()).Return(3, nil)

		page, err := svc.List(ctx, 11, 10)
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 3, page.TotalItems)
	})

	t.Run("offset past max int", func(t *testing.T) {
		repo.EXPECT().List(gomock.Any(), math.MaxInt, 2).Return([]models.User{}, nil)
		repo.EXPECT().Count(gomock.Any()).Return(3, nil)

		page, err := svc.List(ctx, math.MaxInt/2+2, 2)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 3, page.TotalItems)
		assert.Equal(t, math.MaxInt/2+2, page.PageToken)
	})
}
