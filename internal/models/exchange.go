package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeDB represents one completed exchange-rate lookup in the database
type ExchangeDB struct {
	ID           int64           `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	CurrencyCode string          `db:"currency_code"`
	Rate         decimal.Decimal `db:"rate"`
	CreatedAt    time.Time       `db:"created_at"`
}

// CurrencyRequest represents the JSON body for buying an exchange-rate lookup
// swagger:model CurrencyRequest
type CurrencyRequest struct {
	// Currency code to look up
	// required: true
	// example: USD
	CurrencyCode string `json:"currency_code"`
}

// ExchangeResponse represents one exchange-rate lookup returned to the caller
// swagger:model ExchangeResponse
type ExchangeResponse struct {
	// Entry identifier
	// example: 1
	ID int64 `json:"id"`

	// Currency code
	// example: USD
	CurrencyCode string `json:"currency_code"`

	// Conversion rate against the base currency, serialized as a string
	// example: "41.5000"
	Rate decimal.Decimal `json:"rate"`

	// Creation timestamp
	CreatedAt time.Time `json:"created_at"`
}
