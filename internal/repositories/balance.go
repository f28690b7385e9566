package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/obelousov/currency-credit/internal/logger"
)

// BalanceReadRepository handles balance read operations
type BalanceReadRepository struct {
	db *sqlx.DB
}

func NewBalanceReadRepository(db *sqlx.DB) *BalanceReadRepository {
	return &BalanceReadRepository{db: db}
}

// GetByUserID returns the current credit balance for a user.
// Returns sql.ErrNoRows if no balance row exists, which should not happen
// for a registered user.
func (r *BalanceReadRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT balance
		FROM balances
		WHERE user_id = $1
	`

	var balance int64
	err := r.db.GetContext(ctx, &balance, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", balance,
		"error", err,
	)

	return balance, err
}

// BalanceWriteRepository handles balance write operations
type BalanceWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewBalanceWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *BalanceWriteRepository {
	return &BalanceWriteRepository{db: db, txGetter: txGetter}
}

func (r *BalanceWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save creates a balance row for a new user with the given initial amount.
func (r *BalanceWriteRepository) Save(ctx context.Context, userID uuid.UUID, initial int64) error {
	const query = `
		INSERT INTO balances (user_id, balance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, userID, initial)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, initial},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Debit decrements the user's balance by exactly one credit and returns the new
// value. The conditional UPDATE only matches a positive balance, so the row is
// never driven negative; sql.ErrNoRows means the balance was already exhausted
// and nothing was changed. Under a transaction the matched row stays locked
// until commit, which serializes concurrent debits for the same user.
func (r *BalanceWriteRepository) Debit(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		UPDATE balances
		SET balance = balance - 1, updated_at = NOW()
		WHERE user_id = $1 AND balance > 0
		RETURNING balance
	`

	var balance int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &balance, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", balance,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return balance, nil
}
