package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/models"
	"github.com/sbilibin2017/gw-assessment/internal/validator"
)

//go:generate mockgen -source=questions.go -destination=questions_mock.go -package=services

// QuestionRepository is the storage port for checkbox questions.
// GetByID returns (nil, nil) when nothing matches.
type QuestionRepository interface {
	Insert(ctx context.Context, question *models.Question) error
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	GetByTitle(ctx context.Context, title string) ([]models.Question, error)
	GetByCategory(ctx context.Context, category models.Category) ([]models.Question, error)
	List(ctx context.Context, offset, limit int) ([]models.Question, error)
	Count(ctx context.Context) (int, error)
}

// QuestionCache caches questions by id. Get returns (nil, nil) on a miss.
type QuestionCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Question, error)
	Set(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommitHook defers fn until the transaction bound to ctx commits.
type CommitHook func(ctx context.Context, fn func())

// QuestionService validates and persists checkbox questions.
type QuestionService struct {
	repo        QuestionRepository
	cache       QuestionCache
	afterCommit CommitHook
	events      *EventPublisher
}

// NewQuestionService creates a new QuestionService instance. cache and afterCommit may be nil;
// without afterCommit cache entries are evicted right after the write.
func NewQuestionService(repo QuestionRepository, cache QuestionCache, afterCommit CommitHook, events *EventPublisher) *QuestionService {
	return &QuestionService{repo: repo, cache: cache, afterCommit: afterCommit, events: events}
}

func validateQuestion(q *models.Question) error {
	q.Title = strings.TrimSpace(q.Title)

	res := validator.First(
		validator.CheckTitle(q.Title),
		validator.CheckDescription(q.Description),
	)
	if err := res.Err(); err != nil {
		return validationError(err)
	}
	if q.Duration <= 0 || q.Duration >= models.MaxQuestionDuration {
		return validationError(fmt.Errorf("duration must be positive and under %s", models.MaxQuestionDuration))
	}
	if !q.Category.Valid() {
		return validationError(fmt.Errorf("unknown category %q", q.Category))
	}
	return nil
}

// titleTaken reports whether a question other than id already uses title.
func (s *QuestionService) titleTaken(ctx context.Context, title string, id uuid.UUID) (bool, error) {
	same, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return false, err
	}
	for _, q := range same {
		if q.ID != id {
			return true, nil
		}
	}
	return false, nil
}

// Create validates the question, enforces a unique title and inserts it.
func (s *QuestionService) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	if err := validateQuestion(question); err != nil {
		logger.Log.Errorw("invalid question", "title", question.Title, "error", err)
		return nil, err
	}

	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	} else {
		existing, err := s.repo.GetByID(ctx, question.ID)
		if err != nil {
			logger.Log.Errorw("failed to check question exists", "questionID", question.ID, "error", err)
			return nil, err
		}
		if existing != nil {
			logger.Log.Errorw("question already exists", "questionID", question.ID)
			return nil, fmt.Errorf("%w: question %s", ErrConflict, question.ID)
		}
	}

	taken, err := s.titleTaken(ctx, question.Title, question.ID)
	if err != nil {
		logger.Log.Errorw("failed to check title is free", "title", question.Title, "error", err)
		return nil, err
	}
	if taken {
		logger.Log.Errorw("question title already used", "title", question.Title)
		return nil, fmt.Errorf("%w: question titled %q", ErrConflict, question.Title)
	}

	now := time.Now().UTC()
	question.Slug = slug.Make(question.Title)
	question.CreatedAt = now
	question.UpdatedAt = now

	if err := s.repo.Insert(ctx, question); err != nil {
		logger.Log.Errorw("failed to save question", "questionID", question.ID, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.EntityQuestion, question.ID, models.OperationCreated)
	return question, nil
}

// Update validates the question and overwrites the mutable fields of the stored record.
func (s *QuestionService) Update(ctx context.Context, question *models.Question) (*models.Question, error) {
	if err := validateQuestion(question); err != nil {
		logger.Log.Errorw("invalid question", "questionID", question.ID, "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, question.ID)
	if err != nil {
		logger.Log.Errorw("failed to get question", "questionID", question.ID, "error", err)
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: question %s", ErrNotFound, question.ID)
	}

	if existing.Title != question.Title {
		taken, err := s.titleTaken(ctx, question.Title, existing.ID)
		if err != nil {
			logger.Log.Errorw("failed to check title is free", "title", question.Title, "error", err)
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: question titled %q", ErrConflict, question.Title)
		}
	}

	existing.Title = question.Title
	existing.Slug = slug.Make(question.Title)
	existing.Description = question.Description
	existing.Duration = question.Duration
	existing.Category = question.Category
	existing.Answers = question.Answers
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		logger.Log.Errorw("failed to update question", "questionID", existing.ID, "error", err)
		return nil, err
	}

	s.evict(ctx, existing.ID)
	s.events.Publish(ctx, models.EntityQuestion, existing.ID, models.OperationUpdated)
	return existing, nil
}

// Delete removes the question.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get question", "questionID", id, "error", err)
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: question %s", ErrNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete question", "questionID", id, "error", err)
		return err
	}

	s.evict(ctx, id)
	s.events.Publish(ctx, models.EntityQuestion, id, models.OperationDeleted)
	return nil
}

// GetByID returns the question, reading through the cache when one is configured.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Log.Warnw("failed to read question cache", "questionID", id, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get question", "questionID", id, "error", err)
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("%w: question %s", ErrNotFound, id)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, question); err != nil {
			logger.Log.Warnw("failed to cache question", "questionID", id, "error", err)
		}
	}
	return question, nil
}

// GetByTitle returns the questions with exactly this title.
func (s *QuestionService) GetByTitle(ctx context.Context, title string) ([]models.Question, error) {
	questions, err := s.repo.GetByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		logger.Log.Errorw("failed to get questions by title", "title", title, "error", err)
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

// GetByCategory returns the questions of a category.
func (s *QuestionService) GetByCategory(ctx context.Context, category models.Category) ([]models.Question, error) {
	if !category.Valid() {
		return nil, validationError(fmt.Errorf("unknown category %q", category))
	}

	questions, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		logger.Log.Errorw("failed to get questions by category", "category", category, "error", err)
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}

// List returns one page of questions ordered by id.
func (s *QuestionService) List(ctx context.Context, pageToken, pageSize int) (*models.Page[models.Question], error) {
	offset, err := pageOffset(pageToken, pageSize)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		logger.Log.Errorw("failed to list questions", "offset", offset, "limit", pageSize, "error", err)
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		logger.Log.Errorw("failed to count questions", "error", err)
		return nil, err
	}

	if questions == nil {
		questions = []models.Question{}
	}
	return &models.Page[models.Question]{
		Items:      questions,
		TotalItems: total,
		PageToken:  pageToken,
		PageSize:   pageSize,
	}, nil
}

// evict drops the cached question once the write is visible to other readers.
func (s *QuestionService) evict(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	drop := func() {
		if err := s.cache.Delete(ctx, id); err != nil {
			logger.Log.Warnw("failed to evict cached question", "questionID", id, "error", err)
		}
	}
	if s.afterCommit == nil {
		drop()
		return
	}
	s.afterCommit(ctx, drop)
}
