package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/middlewares"
	"github.com/obelousov/currency-credit/internal/models"
)

// BalanceReader defines the interface that the repository must implement.
type BalanceReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NewBalanceHandler returns an HTTP handler for fetching the caller's credit
// balance.
// @Summary Get credit balance
// @Description Returns a list holding the caller's single balance row.
// @Tags balance
// @Produce json
// @Success 200 {array} models.BalanceResponse "Balance"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /balance [get]
// @Security BearerAuth
func NewBalanceHandler(reader BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		userID := middlewares.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Unauthorized"})
			return
		}

		balance, err := reader.GetByUserID(r.Context(), userID)
		if err != nil {
			// A registered user always has a balance row, so any failure
			// here is internal.
			logger.Log.Errorw("failed to get balance", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]models.BalanceResponse{{Balance: balance}})
	}
}
