package models

// ExchangeEvent is published to Kafka after a successful exchange commit
type ExchangeEvent struct {
	EventID      string `json:"event_id"`
	ExchangeID   int64  `json:"exchange_id"`
	UserID       string `json:"user_id"`
	CurrencyCode string `json:"currency_code"`
	Rate         string `json:"rate"`
	Timestamp    int64  `json:"timestamp"`
}
