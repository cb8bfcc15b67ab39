package memory_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/password"
	"github.com/sbilibin2017/gw-assessment/internal/repositories/memory"
	"github.com/sbilibin2017/gw-assessment/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository_Pagination(t *testing.T) {
	ctx := context.Background()
	svc := services.NewUserService(memory.NewUserRepository(), memory.NewCredentialRepository(), nil)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.Create(ctx, &models.User{FirstName: "John", LastName: "Doe", Email: email})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, 3, first.TotalItems)

	second, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Less(t, first.Items[1].ID.String(), second.Items[0].ID.String())

	beyond, err := svc.List(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 3, beyond.TotalItems)

	huge, err := svc.List(ctx, 4611686018427387905, 2)
	require.NoError(t, err)
	assert.Empty(t, huge.Items)
	assert.Equal(t, 3, huge.TotalItems)
}

func TestUserRepository_ListBounds(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, repo.Insert(ctx, &models.User{ID: uuid.New(), Email: email}))
	}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   int
	}{
		{name: "negative offset", offset: -4, limit: 2, want: 0},
		{name: "offset past end", offset: math.MaxInt, limit: 2, want: 0},
		{name: "limit overflows end", offset: 1, limit: math.MaxInt, want: 2},
		{name: "zero limit", offset: 0, limit: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := repo.List(ctx, tt.offset, tt.limit)
			require.NoError(t, err)
			assert.Len(t, users, tt.want)
		})
	}
}

func TestUserRepository_Conflicts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	u := &models.User{ID: uuid.New(), Email: "a@example.com"}

	require.NoError(t, repo.Insert(ctx, u))
	assert.ErrorIs(t, repo.Insert(ctx, u), services.ErrConflict)
	assert.ErrorIs(t, repo.Insert(ctx, &models.User{ID: uuid.New(), Email: "a@example.com"}), services.ErrConflict)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Email = "mutated@example.com"

	again, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.NotNil(t, again)
}

func TestCredentialLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCredentialRepository()
	users := memory.NewUserRepository()
	svc := services.NewCredentialService(repo, users, password.NewBcryptHasher(bcrypt.MinCost), nil)
	userID := uuid.New()
	require.NoError(t, users.Insert(ctx, &models.User{ID: userID, Email: "a@example.com"}))

	_, err := svc.Create(ctx, uuid.Nil, uuid.New(), "Abcdef1!")
	assert.ErrorIs(t, err, services.ErrNotFound)

	cred, err := svc.Create(ctx, uuid.Nil, userID, "Abcdef1!")
	require.NoError(t, err)

	_, err = svc.Create(ctx, uuid.Nil, userID, "Abcdef1!")
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = svc.Update(ctx, cred.ID, "Wrong1!!x", "Newpass1!")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	stored, err := repo.GetByID(ctx, cred.ID)
	require.NoError(t, err)
	assert.Equal(t, cred.PasswordHash, stored.PasswordHash)

	updated, err := svc.Update(ctx, cred.ID, "Abcdef1!", "Newpass1!")
	require.NoError(t, err)
	assert.NotEqual(t, cred.PasswordHash, updated.PasswordHash)

	_, err = svc.Delete(ctx, cred.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, cred.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.Delete(ctx, cred.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// The row survives the soft delete, so the id stays taken.
	_, err = svc.Create(ctx, cred.ID, uuid.New(), "Abcdef1!")
	assert.ErrorIs(t, err, services.ErrConflict)

	// The user may register a new credential once the old one is deleted.
	_, err = svc.Create(ctx, uuid.Nil, userID, "Abcdef1!")
	assert.NoError(t, err)

	found, err := svc.GetByIDs(ctx, []uuid.UUID{cred.ID})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUserDeletionRevokesCredential(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	credentials := memory.NewCredentialRepository()
	userSvc := services.NewUserService(users, credentials, nil)
	credentialSvc := services.NewCredentialService(credentials, users, password.NewBcryptHasher(bcrypt.MinCost), nil)

	user, err := userSvc.Create(ctx, &models.User{FirstName: "John", LastName: "Doe", Email: "john@example.com"})
	require.NoError(t, err)
	cred, err := credentialSvc.Create(ctx, uuid.Nil, user.ID, "Abcdef1!")
	require.NoError(t, err)

	_, err = userSvc.Delete(ctx, user.ID)
	require.NoError(t, err)

	_, err = credentialSvc.GetByID(ctx, cred.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	stored, err := credentials.GetByID(ctx, cred.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsDeleted())
}

func TestQuestionRepository_Filters(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewQuestionRepository()

	q := &models.Question{ID: uuid.New(), Title: "First question", Category: models.CategoryLanguage,
		Duration: time.Minute, Answers: models.Answers{{Text: "a", IsCorrect: true}}}
	require.NoError(t, repo.Insert(ctx, q))
	require.NoError(t, repo.Insert(ctx, &models.Question{ID: uuid.New(), Title: "Second question", Category: models.CategoryCognitive}))
	assert.ErrorIs(t, repo.Insert(ctx, &models.Question{ID: uuid.New(), Title: "First question"}), services.ErrConflict)

	q.Answers[0].Text = "changed outside"
	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Answers[0].Text)

	byCategory, err := repo.GetByCategory(ctx, models.CategoryCognitive)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Second question", byCategory[0].Title)

	byTitle, err := repo.GetByTitle(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, byTitle)

	require.NoError(t, repo.Delete(ctx, q.ID))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
