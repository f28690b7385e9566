package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/obelousov/currency-credit/internal/facades"
	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/middlewares"
	"github.com/obelousov/currency-credit/internal/models"
	"github.com/obelousov/currency-credit/internal/services"
)

// Exchanger defines the interface that the service must implement.
type Exchanger interface {
	Exchange(ctx context.Context, userID uuid.UUID, currencyCode string) (*models.ExchangeDB, error)
}

// NewCurrencyHandler returns an HTTP handler that buys one exchange-rate
// lookup for the authenticated user.
// @Summary Buy an exchange-rate lookup
// @Description Fetches the current rate for a currency code against the base currency, costs one credit and records a history entry.
// @Tags currency
// @Accept json
// @Produce json
// @Param request body models.CurrencyRequest true "Currency request"
// @Success 201 {object} models.ExchangeResponse "Lookup bought"
// @Failure 400 {object} models.CurrencyCodeErrorResponse "Missing or invalid currency code / quota exceeded"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.DetailErrorResponse "Not enough money"
// @Failure 503 {object} models.ErrorResponse "Rate provider unavailable"
// @Router /currency [post]
// @Security BearerAuth
func NewCurrencyHandler(svc Exchanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID := middlewares.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req models.CurrencyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid request body"})
			return
		}

		entry, err := svc.Exchange(r.Context(), userID, req.CurrencyCode)
		if err != nil {
			var invalidCurrency *facades.InvalidCurrencyError
			switch {
			case errors.Is(err, services.ErrEmptyCurrencyCode):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.CurrencyCodeErrorResponse{
					CurrencyCode: "currency code is required",
				})
			case errors.Is(err, services.ErrQuotaExceeded):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Monthly request limit reached",
				})
			case errors.Is(err, services.ErrInsufficientFunds):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(models.DetailErrorResponse{
					Detail: "Not enough money",
				})
			case errors.As(err, &invalidCurrency):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.CurrencyCodeErrorResponse{
					CurrencyCode: invalidCurrency.Detail,
				})
			case errors.Is(err, facades.ErrServiceUnavailable):
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "External exchange service is unavailable.",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.ExchangeResponse{
			ID:           entry.ID,
			CurrencyCode: entry.CurrencyCode,
			Rate:         entry.Rate,
			CreatedAt:    entry.CreatedAt,
		})
	}
}
