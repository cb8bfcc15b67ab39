// Package memory holds map-backed repositories used by the memory storage mode and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/services"
)

// sortedByID returns the map values ordered by the string form of their id,
// which matches PostgreSQL's uuid ordering.
func sortedByID[T any](items map[uuid.UUID]T) []T {
	ids := make([]uuid.UUID, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, items[id])
	}
	return out
}

func window[T any](items []T, offset, limit int) []T {
	if offset < 0 || limit < 1 || offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", services.ErrConflict, fmt.Sprintf(format, args...))
}

// UserRepository keeps users in a map.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *UserRepository) Insert(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return conflict("user %s", user.ID)
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return conflict("email %s", user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email && u.ID != user.ID {
			return conflict("email %s", user.Email)
		}
	}
	if _, ok := r.users[user.ID]; ok {
		r.users[user.ID] = *user
	}
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) List(_ context.Context, offset, limit int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return window(sortedByID(r.users), offset, limit), nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}

// CredentialRepository keeps credentials in a map. Soft-deleted entries stay in the map.
type CredentialRepository struct {
	mu          sync.RWMutex
	credentials map[uuid.UUID]models.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{credentials: make(map[uuid.UUID]models.Credential)}
}

func (r *CredentialRepository) Insert(_ context.Context, credential *models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.credentials[credential.ID]; ok {
		return conflict("credential %s", credential.ID)
	}
	if !credential.IsDeleted() {
		for _, c := range r.credentials {
			if c.UserID == credential.UserID && !c.IsDeleted() {
				return conflict("user %s already has a credential", credential.UserID)
			}
		}
	}
	r.credentials[credential.ID] = *credential
	return nil
}

func (r *CredentialRepository) Update(_ context.Context, credential *models.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.credentials[credential.ID]; ok {
		r.credentials[credential.ID] = *credential
	}
	return nil
}

func (r *CredentialRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.credentials[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CredentialRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[uuid.UUID]models.Credential, len(ids))
	for _, id := range ids {
		if c, ok := r.credentials[id]; ok {
			found[id] = c
		}
	}
	return sortedByID(found), nil
}

func (r *CredentialRepository) GetActiveByUserID(_ context.Context, userID uuid.UUID) (*models.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.credentials {
		if c.UserID == userID && !c.IsDeleted() {
			return &c, nil
		}
	}
	return nil, nil
}

// QuestionRepository keeps questions in a map.
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[uuid.UUID]models.Question
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[uuid.UUID]models.Question)}
}

func (r *QuestionRepository) Insert(_ context.Context, question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.questions[question.ID]; ok {
		return conflict("question %s", question.ID)
	}
	for _, q := range r.questions {
		if q.Title == question.Title {
			return conflict("question titled %q", question.Title)
		}
	}
	r.questions[question.ID] = cloneQuestion(*question)
	return nil
}

func (r *QuestionRepository) Update(_ context.Context, question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, q := range r.questions {
		if q.Title == question.Title && q.ID != question.ID {
			return conflict("question titled %q", question.Title)
		}
	}
	if _, ok := r.questions[question.ID]; ok {
		r.questions[question.ID] = cloneQuestion(*question)
	}
	return nil
}

func (r *QuestionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.questions, id)
	return nil
}

func (r *QuestionRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	q = cloneQuestion(q)
	return &q, nil
}

func (r *QuestionRepository) GetByTitle(_ context.Context, title string) ([]models.Question, error) {
	return r.filter(func(q models.Question) bool { return q.Title == title }), nil
}

func (r *QuestionRepository) GetByCategory(_ context.Context, category models.Category) ([]models.Question, error) {
	return r.filter(func(q models.Question) bool { return q.Category == category }), nil
}

func (r *QuestionRepository) List(_ context.Context, offset, limit int) ([]models.Question, error) {
	return window(r.filter(func(models.Question) bool { return true }), offset, limit), nil
}

func (r *QuestionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.questions), nil
}

func (r *QuestionRepository) filter(keep func(models.Question) bool) []models.Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make(map[uuid.UUID]models.Question)
	for id, q := range r.questions {
		if keep(q) {
			matched[id] = cloneQuestion(q)
		}
	}
	return sortedByID(matched)
}

func cloneQuestion(q models.Question) models.Question {
	if q.Answers != nil {
		q.Answers = append(models.Answers(nil), q.Answers...)
	}
	return q
}
