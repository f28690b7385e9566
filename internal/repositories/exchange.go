package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/models"
)

// ExchangeWriteRepository handles exchange history write operations
type ExchangeWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewExchangeWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *ExchangeWriteRepository {
	return &ExchangeWriteRepository{db: db, txGetter: txGetter}
}

// Save appends one history row and returns it with the server-assigned
// id and created_at.
func (r *ExchangeWriteRepository) Save(ctx context.Context, userID uuid.UUID, currencyCode string, rate decimal.Decimal) (*models.ExchangeDB, error) {
	const query = `
		INSERT INTO exchanges (user_id, currency_code, rate, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, user_id, currency_code, rate, created_at
	`

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	var entry models.ExchangeDB
	err := sqlx.GetContext(ctx, executor, &entry, query, userID, currencyCode, rate)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, currencyCode, rate},
		"result", entry.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ExchangeReadRepository handles exchange history read operations
type ExchangeReadRepository struct {
	db *sqlx.DB
}

func NewExchangeReadRepository(db *sqlx.DB) *ExchangeReadRepository {
	return &ExchangeReadRepository{db: db}
}

// List returns the user's history entries in insertion order. Both filters are
// optional: currencyCode matches the stored code exactly, createdAt matches the
// date component of created_at only.
func (r *ExchangeReadRepository) List(ctx context.Context, userID uuid.UUID, currencyCode *string, createdAt *time.Time) ([]models.ExchangeDB, error) {
	const query = `
		SELECT id, user_id, currency_code, rate, created_at
		FROM exchanges
		WHERE user_id = $1
		  AND ($2::VARCHAR IS NULL OR currency_code = $2)
		  AND ($3::DATE IS NULL OR created_at::DATE = $3::DATE)
		ORDER BY created_at, id
	`

	entries := []models.ExchangeDB{}
	err := r.db.SelectContext(ctx, &entries, query, userID, currencyCode, createdAt)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, currencyCode, createdAt},
		"result", len(entries),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountForMonth returns the number of history entries the user created within
// the calendar month containing now.
func (r *ExchangeReadRepository) CountForMonth(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM exchanges
		WHERE user_id = $1
		  AND created_at >= date_trunc('month', $2::TIMESTAMPTZ)
		  AND created_at < date_trunc('month', $2::TIMESTAMPTZ) + INTERVAL '1 month'
	`

	var count int64
	err := r.db.GetContext(ctx, &count, query, userID, now)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, now},
		"result", count,
		"error", err,
	)

	return count, err
}
