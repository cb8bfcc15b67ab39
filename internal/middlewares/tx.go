package middlewares

import (
	"context"
	"net/http"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
)

// TxMiddleware wraps an HTTP handler with a database transaction.
// The transaction commits when the handler answers below 400 and rolls back otherwise.
// Functions registered with AfterCommit run once the commit succeeds.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.Beginx()
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			hooks := &commitHooks{}
			ctx := setTxToContext(r.Context(), tx)
			ctx = context.WithValue(ctx, hooksKey, hooks)
			r = r.WithContext(ctx)

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			if rw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			hooks.run()
		})
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

type hooksContextKey struct{}

var (
	txKey    = contextKey{}
	hooksKey = hooksContextKey{}
)

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

func (h *commitHooks) add(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *commitHooks) run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// AfterCommit defers fn until the request transaction commits. Without a
// transaction in ctx fn runs immediately. Rolled back requests drop fn.
func AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(hooksKey).(*commitHooks)
	if !ok {
		fn()
		return
	}
	hooks.add(fn)
}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
