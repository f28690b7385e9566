package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/obelousov/currency-credit/internal/logger"
)

// ErrServiceUnavailable is returned when the provider cannot be reached,
// times out, or answers with something that is not a valid API response.
var ErrServiceUnavailable = errors.New("external exchange service is unavailable")

// InvalidCurrencyError is returned when the provider itself rejects the
// request, e.g. for an unknown currency code.
type InvalidCurrencyError struct {
	Detail string
}

func (e *InvalidCurrencyError) Error() string {
	return e.Detail
}

// ExchangeRateHTTPFacade fetches conversion rates from the exchangerate-api
// pair endpoint.
type ExchangeRateHTTPFacade struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	baseCurrency string
}

// NewExchangeRateHTTPFacade creates a new facade. The client is expected to
// carry a bounded timeout.
func NewExchangeRateHTTPFacade(client *http.Client, baseURL, apiKey, baseCurrency string) *ExchangeRateHTTPFacade {
	return &ExchangeRateHTTPFacade{
		client:       client,
		baseURL:      baseURL,
		apiKey:       apiKey,
		baseCurrency: baseCurrency,
	}
}

type pairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// GetRate fetches the conversion rate from currencyCode to the fixed base
// currency.
func (f *ExchangeRateHTTPFacade) GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v6/%s/pair/%s/%s", f.baseURL, f.apiKey, currencyCode, f.baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Log.Errorw("failed to build provider request", "currency", currencyCode, "error", err)
		return decimal.Decimal{}, ErrServiceUnavailable
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("provider request failed", "currency", currencyCode, "error", err)
		return decimal.Decimal{}, ErrServiceUnavailable
	}
	defer resp.Body.Close()

	var data pairResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		logger.Log.Errorw("failed to decode provider response", "currency", currencyCode, "error", err)
		return decimal.Decimal{}, ErrServiceUnavailable
	}

	if data.Result != "success" {
		errorType := data.ErrorType
		if errorType == "" {
			errorType = "unknown_error"
		}
		logger.Log.Errorw("provider rejected request", "currency", currencyCode, "error_type", errorType)
		return decimal.Decimal{}, &InvalidCurrencyError{
			Detail: fmt.Sprintf("Invalid currency code or API error: %s", errorType),
		}
	}

	logger.Log.Infow("fetched provider rate", "currency", currencyCode, "base", f.baseCurrency, "rate", data.ConversionRate)
	return data.ConversionRate, nil
}
