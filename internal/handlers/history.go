package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/middlewares"
	"github.com/obelousov/currency-credit/internal/models"
)

// HistoryLister defines the interface that the repository must implement.
type HistoryLister interface {
	List(ctx context.Context, userID uuid.UUID, currencyCode *string, createdAt *time.Time) ([]models.ExchangeDB, error)
}

// NewHistoryHandler returns an HTTP handler listing the caller's exchange
// history.
// @Summary List exchange history
// @Description Returns the caller's history entries, optionally filtered by exact currency code and/or creation date (date component only).
// @Tags currency
// @Produce json
// @Param currency_code query string false "Exact currency code filter"
// @Param created_at query string false "Creation date filter, YYYY-MM-DD"
// @Success 200 {array} models.ExchangeResponse "History entries"
// @Failure 400 {object} models.ErrorResponse "Invalid date filter"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /history [get]
// @Security BearerAuth
func NewHistoryHandler(lister HistoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID := middlewares.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Unauthorized"})
			return
		}

		var currencyCode *string
		if code := r.URL.Query().Get("currency_code"); code != "" {
			currencyCode = &code
		}

		var createdAt *time.Time
		if dateParam := r.URL.Query().Get("created_at"); dateParam != "" {
			parsed, err := time.Parse("2006-01-02", dateParam)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "created_at must be formatted as YYYY-MM-DD",
				})
				return
			}
			createdAt = &parsed
		}

		entries, err := lister.List(r.Context(), userID, currencyCode, createdAt)
		if err != nil {
			logger.Log.Errorw("failed to list history", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal server error"})
			return
		}

		resp := make([]models.ExchangeResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, models.ExchangeResponse{
				ID:           entry.ID,
				CurrencyCode: entry.CurrencyCode,
				Rate:         entry.Rate,
				CreatedAt:    entry.CreatedAt,
			})
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
