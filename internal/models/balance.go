package models

import (
	"time"

	"github.com/google/uuid"
)

// BalanceDB represents a per-user credit balance row in the database
type BalanceDB struct {
	UserID    uuid.UUID `db:"user_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BalanceResponse represents a single balance row returned to the caller
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Remaining credit balance
	// example: 1000
	Balance int64 `json:"balance"`
}
