package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-assessment/internal/models"
)

const credentialColumns = `id, user_id, password_hash, is_deleted, deleted_at, created_at, updated_at`

// CredentialRepository stores user credentials in PostgreSQL. Soft-deleted rows are kept.
type CredentialRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewCredentialRepository(db *sqlx.DB, txGetter TxGetter) *CredentialRepository {
	return &CredentialRepository{db: db, txGetter: txGetter}
}

func (r *CredentialRepository) Insert(ctx context.Context, credential *models.Credential) error {
	const query = `
		INSERT INTO user_credentials (id, user_id, password_hash, is_deleted, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	row := models.NewCredentialDB(credential)
	args := []any{row.ID, row.UserID, row.PasswordHash, row.IsDeleted, row.DeletedAt, row.CreatedAt, row.UpdatedAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	// The hash stays out of the log.
	logQuery(query, []any{row.ID, row.UserID, row.IsDeleted}, rowsAffected(res), err)

	return mapError(err)
}

func (r *CredentialRepository) Update(ctx context.Context, credential *models.Credential) error {
	const query = `
		UPDATE user_credentials
		SET password_hash = $2, is_deleted = $3, deleted_at = $4, updated_at = $5
		WHERE id = $1
	`
	row := models.NewCredentialDB(credential)
	args := []any{row.ID, row.PasswordHash, row.IsDeleted, row.DeletedAt, row.UpdatedAt}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	logQuery(query, []any{row.ID, row.IsDeleted, row.DeletedAt}, rowsAffected(res), err)

	return mapError(err)
}

func (r *CredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Credential, error) {
	const query = `SELECT ` + credentialColumns + ` FROM user_credentials WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *CredentialRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.Credential, error) {
	const query = `SELECT ` + credentialColumns + ` FROM user_credentials WHERE user_id = $1 AND NOT is_deleted`
	return r.getOne(ctx, query, userID)
}

// GetByIDs returns the rows among ids, deleted ones included, ordered by id.
func (r *CredentialRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Credential, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT `+credentialColumns+` FROM user_credentials WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var rows []models.CredentialDB
	err = sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &rows, query, args...)
	logQuery(query, args, len(rows), err)

	if err != nil {
		return nil, err
	}

	credentials := make([]models.Credential, 0, len(rows))
	for _, row := range rows {
		credentials = append(credentials, *row.ToCredential())
	}
	return credentials, nil
}

func (r *CredentialRepository) getOne(ctx context.Context, query string, arg any) (*models.Credential, error) {
	var row models.CredentialDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query, arg)
	logQuery(query, []any{arg}, row.ID, err)

	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.ToCredential(), nil
}
