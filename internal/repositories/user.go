package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-assessment/internal/models"
)

const userColumns = `id, first_name, last_name, email, phone_number, date_of_birth, created_at, updated_at`

// UserRepository stores users in PostgreSQL.
type UserRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserRepository(db *sqlx.DB, txGetter TxGetter) *UserRepository {
	return &UserRepository{db: db, txGetter: txGetter}
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (id, first_name, last_name, email, phone_number, date_of_birth, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	args := []any{user.ID, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.DateOfBirth, user.CreatedAt, user.UpdatedAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)

	return mapError(err)
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, phone_number = $5, date_of_birth = $6, updated_at = $7
		WHERE id = $1
	`
	args := []any{user.ID, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.DateOfBirth, user.UpdatedAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, args, rowsAffected(res), err)

	return mapError(err)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	logQuery(query, []any{id}, rowsAffected(res), err)

	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// List returns users ordered by id.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`

	var users []models.User
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query, limit, offset)
	logQuery(query, []any{limit, offset}, len(users), err)

	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`

	var count int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &count, query)
	logQuery(query, nil, count, err)

	return count, err
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)
	logQuery(query, []any{arg}, user, err)

	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
