package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/models"
	"github.com/obelousov/currency-credit/internal/repositories"
)

var (
	// ErrEmptyCurrencyCode is returned when the request carries no currency code.
	ErrEmptyCurrencyCode = errors.New("currency code is required")

	// ErrQuotaExceeded is returned when the user hit the monthly request limit.
	ErrQuotaExceeded = errors.New("monthly request limit reached")

	// ErrInsufficientFunds is returned when the user's credit balance is exhausted.
	ErrInsufficientFunds = errors.New("not enough money")
)

// monthlyRequestLimit caps exchange requests per user per calendar month,
// independent of balance. Bounds external API spend and history growth.
const monthlyRequestLimit = 1500

var exchangeRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "exchange_requests_total",
	Help: "Exchange request outcomes",
}, []string{"outcome"})

// BalanceReader reads a user's current credit balance.
type BalanceReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// BalanceDebitor decrements a user's credit balance by one.
type BalanceDebitor interface {
	Debit(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ExchangeWriter appends history entries.
type ExchangeWriter interface {
	Save(ctx context.Context, userID uuid.UUID, currencyCode string, rate decimal.Decimal) (*models.ExchangeDB, error)
}

// ExchangeCounter counts a user's history entries within a calendar month.
type ExchangeCounter interface {
	CountForMonth(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error)
}

// RateProvider fetches the conversion rate for a currency code from the
// external provider.
type RateProvider interface {
	GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error)
}

// RateCache caches provider conversion rates.
type RateCache interface {
	GetRate(ctx context.Context, currencyCode, baseCurrency string) (decimal.Decimal, error)
	SetRate(ctx context.Context, currencyCode, baseCurrency string, rate decimal.Decimal) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ExchangeService executes the balance-debiting exchange request flow.
type ExchangeService struct {
	db             TxStarter
	balanceReader  BalanceReader
	balanceDebitor BalanceDebitor
	writer         ExchangeWriter
	counter        ExchangeCounter
	provider       RateProvider
	cache          RateCache
	kafkaWriter    KafkaWriter
	baseCurrency   string
}

// NewExchangeService creates a new ExchangeService. cache and kafkaWriter are
// optional and may be nil.
func NewExchangeService(
	db TxStarter,
	balanceReader BalanceReader,
	balanceDebitor BalanceDebitor,
	writer ExchangeWriter,
	counter ExchangeCounter,
	provider RateProvider,
	cache RateCache,
	kafkaWriter KafkaWriter,
	baseCurrency string,
) *ExchangeService {
	return &ExchangeService{
		db:             db,
		balanceReader:  balanceReader,
		balanceDebitor: balanceDebitor,
		writer:         writer,
		counter:        counter,
		provider:       provider,
		cache:          cache,
		kafkaWriter:    kafkaWriter,
		baseCurrency:   baseCurrency,
	}
}

// Exchange buys one exchange-rate lookup for the user: it checks the monthly
// quota and the credit balance, fetches the rate, then debits one credit and
// appends the history row in a single transaction. The debit happens exactly
// once per successful request and never on failure.
func (svc *ExchangeService) Exchange(ctx context.Context, userID uuid.UUID, currencyCode string) (*models.ExchangeDB, error) {
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	if currencyCode == "" {
		exchangeRequestsTotal.WithLabelValues("invalid_input").Inc()
		return nil, ErrEmptyCurrencyCode
	}

	count, err := svc.counter.CountForMonth(ctx, userID, time.Now().UTC())
	if err != nil {
		logger.Log.Errorw("failed to count monthly requests", "userID", userID, "error", err)
		exchangeRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if count >= monthlyRequestLimit {
		logger.Log.Infow("monthly request limit reached", "userID", userID, "count", count)
		exchangeRequestsTotal.WithLabelValues("quota_exceeded").Inc()
		return nil, ErrQuotaExceeded
	}

	// Fast-fail pre-check. Not authoritative: the balance can still change
	// before the debit below, which re-checks under the row lock.
	balance, err := svc.balanceReader.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to read balance", "userID", userID, "error", err)
		exchangeRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if balance <= 0 {
		exchangeRequestsTotal.WithLabelValues("insufficient_funds").Inc()
		return nil, ErrInsufficientFunds
	}

	// The rate is fetched before the transaction opens so no lock is held
	// across the external round trip.
	rate, err := svc.fetchRate(ctx, currencyCode)
	if err != nil {
		exchangeRequestsTotal.WithLabelValues("provider_error").Inc()
		return nil, err
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		exchangeRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	txCtx := repositories.WithTx(ctx, tx)

	if _, err := svc.balanceDebitor.Debit(txCtx, userID); err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			// Balance changed between the pre-check and here.
			exchangeRequestsTotal.WithLabelValues("insufficient_funds").Inc()
			return nil, ErrInsufficientFunds
		}
		logger.Log.Errorw("failed to debit balance", "userID", userID, "error", err)
		exchangeRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	entry, err := svc.writer.Save(txCtx, userID, currencyCode, rate)
	if err != nil {
		tx.Rollback()
		logger.Log.Errorw("failed to save history entry", "userID", userID, "error", err)
		exchangeRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit exchange", "userID", userID, "error", err)
		exchangeRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	exchangeRequestsTotal.WithLabelValues("success").Inc()
	svc.publishExchange(ctx, entry)

	return entry, nil
}

// fetchRate consults the cache first and falls back to the provider. Only
// provider successes are cached; cache failures are never fatal.
func (svc *ExchangeService) fetchRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	if svc.cache != nil {
		if rate, err := svc.cache.GetRate(ctx, currencyCode, svc.baseCurrency); err == nil {
			return rate, nil
		}
	}

	rate, err := svc.provider.GetRate(ctx, currencyCode)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if svc.cache != nil {
		if err := svc.cache.SetRate(ctx, currencyCode, svc.baseCurrency, rate); err != nil {
			logger.Log.Errorw("failed to cache rate", "currency", currencyCode, "error", err)
		}
	}

	return rate, nil
}

// publishExchange publishes a completed exchange to Kafka.
func (svc *ExchangeService) publishExchange(ctx context.Context, entry *models.ExchangeDB) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "exchange_id", entry.ID)
		return
	}

	event := models.ExchangeEvent{
		EventID:      uuid.NewString(),
		ExchangeID:   entry.ID,
		UserID:       entry.UserID.String(),
		CurrencyCode: entry.CurrencyCode,
		Rate:         entry.Rate.String(),
		Timestamp:    entry.CreatedAt.Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal exchange event", "exchange_id", entry.ID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish exchange event", "exchange_id", entry.ID, "error", err)
	} else {
		logger.Log.Infow("exchange event published", "exchange_id", entry.ID, "currency", entry.CurrencyCode)
	}
}
