package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-assessment/internal/models"
)

const questionColumns = `id, title, slug, description, duration_seconds, category, answers, created_at, updated_at`

// QuestionRepository stores checkbox questions in PostgreSQL.
type QuestionRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewQuestionRepository(db *sqlx.DB, txGetter TxGetter) *QuestionRepository {
	return &QuestionRepository{db: db, txGetter: txGetter}
}

func (r *QuestionRepository) Insert(ctx context.Context, question *models.Question) error {
	const query = `
		INSERT INTO questions (id, title, slug, description, duration_seconds, category, answers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	row := models.NewQuestionDB(question)
	args := []any{row.ID, row.Title, row.Slug, row.Description, row.DurationSeconds, row.Category, row.Answers, row.CreatedAt, row.UpdatedAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)

	return mapError(err)
}

func (r *QuestionRepository) Update(ctx context.Context, question *models.Question) error {
	const query = `
		UPDATE questions
		SET title = $2, slug = $3, description = $4, duration_seconds = $5, category = $6, answers = $7, updated_at = $8
		WHERE id = $1
	`
	row := models.NewQuestionDB(question)
	args := []any{row.ID, row.Title, row.Slug, row.Description, row.DurationSeconds, row.Category, row.Answers, row.UpdatedAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)

	return mapError(err)
}

func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM questions WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	logQuery(query, []any{id}, rowsAffected(res), err)

	return err
}

func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	const query = `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	var row models.QuestionDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, id)
	logQuery(query, []any{id}, row.ID, err)

	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToQuestion(), nil
}

func (r *QuestionRepository) GetByTitle(ctx context.Context, title string) ([]models.Question, error) {
	const query = `SELECT ` + questionColumns + ` FROM questions WHERE title = $1 ORDER BY id`
	return r.selectMany(ctx, query, title)
}

func (r *QuestionRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.Question, error) {
	const query = `SELECT ` + questionColumns + ` FROM questions WHERE category = $1 ORDER BY id`
	return r.selectMany(ctx, query, string(category))
}

// List returns questions ordered by id.
func (r *QuestionRepository) List(ctx context.Context, offset, limit int) ([]models.Question, error) {
	const query = `SELECT ` + questionColumns + ` FROM questions ORDER BY id LIMIT $1 OFFSET $2`
	return r.selectMany(ctx, query, limit, offset)
}

func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM questions`

	var count int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &count, query)
	logQuery(query, nil, count, err)

	return count, err
}

func (r *QuestionRepository) selectMany(ctx context.Context, query string, args ...any) ([]models.Question, error) {
	var rows []models.QuestionDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, args...)
	logQuery(query, args, len(rows), err)

	if err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, *row.ToQuestion())
	}
	return questions, nil
}
