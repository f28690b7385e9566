package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/obelousov/currency-credit/internal/logger"
)

// RateCacheRepository caches provider conversion rates in Redis
type RateCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached rates
}

// NewRateCacheRepository creates a new repository instance with a TTL for entries
func NewRateCacheRepository(client *redis.Client, expiration time.Duration) *RateCacheRepository {
	return &RateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetRate fetches a cached conversion rate for a currency pair
func (r *RateCacheRepository) GetRate(ctx context.Context, currencyCode, baseCurrency string) (decimal.Decimal, error) {
	key := fmt.Sprintf("exchange_rate:%s:%s", currencyCode, baseCurrency)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"result", val,
			"error", err,
		)
		if err == redis.Nil {
			return decimal.Decimal{}, fmt.Errorf("exchange rate not found in cache for %s->%s", currencyCode, baseCurrency)
		}
		return decimal.Decimal{}, err
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return decimal.Decimal{}, err
	}

	logger.Log.Infow(
		"key", key,
		"value", val,
		"result", rate,
		"error", nil,
	)

	return rate, nil
}

// SetRate caches a conversion rate for a currency pair with expiration
func (r *RateCacheRepository) SetRate(ctx context.Context, currencyCode, baseCurrency string, rate decimal.Decimal) error {
	key := fmt.Sprintf("exchange_rate:%s:%s", currencyCode, baseCurrency)
	err := r.client.Set(ctx, key, rate.String(), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"rate", rate,
		"result", "ok",
		"error", err,
	)

	return err
}
