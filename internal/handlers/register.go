package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/models"
	"github.com/obelousov/currency-credit/internal/services"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 8

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string) (access, refresh string, err error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with an initial credit balance of 1000 and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} models.RegisterResponse "User successfully registered"
// @Failure 400 {object} models.ErrorResponse "Duplicate username or invalid request"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid request body"})
			return
		}

		if req.Username == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "username is required"})
			return
		}

		if len(req.Password) < minPasswordLength {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.PasswordErrorResponse{
				Password: "password must be at least 8 characters",
			})
			return
		}

		access, refresh, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Username already exists"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.RegisterResponse{
			User:    models.RegisterUser{Username: req.Username},
			Access:  access,
			Refresh: refresh,
			Message: "User registered successfully.",
		})
	}
}
