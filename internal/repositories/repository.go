package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/services"
)

// PostgreSQL error codes mapped onto service errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// TxGetter returns the transaction bound to the request context, if any.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor picks the request transaction when there is one and the pool otherwise.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// logQuery logs the query on a single line together with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

// mapError turns unique violations into services.ErrConflict and references
// to missing rows into services.ErrNotFound.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return fmt.Errorf("%w: %s", services.ErrConflict, pgErr.ConstraintName)
	case foreignKeyViolation:
		return fmt.Errorf("%w: %s", services.ErrNotFound, pgErr.ConstraintName)
	}
	return err
}

// noRows reports whether err means the lookup matched nothing.
func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}
