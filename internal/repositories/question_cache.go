package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/models"
)

// QuestionCacheRepository caches questions by id in Redis
type QuestionCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached questions
}

// NewQuestionCacheRepository creates a new repository instance with the given TTL
func NewQuestionCacheRepository(client *redis.Client, expiration time.Duration) *QuestionCacheRepository {
	return &QuestionCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func questionKey(id uuid.UUID) string {
	return fmt.Sprintf("question:%s", id)
}

// Get returns the cached question, or nil on a miss
func (r *QuestionCacheRepository) Get(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	key := questionKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("key", key, "result", "miss", "error", nil)
		return nil, nil
	}
	if err != nil {
		logger.Log.Infow("key", key, "result", nil, "error", err)
		return nil, err
	}

	var question models.Question
	if err := json.Unmarshal(val, &question); err != nil {
		logger.Log.Infow("key", key, "value", string(val), "result", nil, "error", err)
		return nil, err
	}

	logger.Log.Infow("key", key, "result", "hit", "error", nil)
	return &question, nil
}

// Set caches the question with expiration
func (r *QuestionCacheRepository) Set(ctx context.Context, question *models.Question) error {
	key := questionKey(question.ID)

	val, err := json.Marshal(question)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, val, r.exp).Err()
	logger.Log.Infow("key", key, "result", "ok", "error", err)

	return err
}

// Delete evicts the cached question
func (r *QuestionCacheRepository) Delete(ctx context.Context, id uuid.UUID) error {
	key := questionKey(id)

	err := r.client.Del(ctx, key).Err()
	logger.Log.Infow("key", key, "result", "deleted", "error", err)

	return err
}
