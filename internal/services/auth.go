package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/models"
	"github.com/obelousov/currency-credit/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists = errors.New("username already exists")
)

// initialBalance is the credit balance every new user starts with.
const initialBalance = 1000

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash string) (uuid.UUID, error)
}

// BalanceCreator creates the initial balance row for a new user.
type BalanceCreator interface {
	Save(ctx context.Context, userID uuid.UUID, initial int64) error
}

// TokenPairGenerator defines an interface for generating JWT token pairs.
type TokenPairGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error)
}

// TxStarter starts a database transaction.
type TxStarter interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// AuthService handles user registration.
type AuthService struct {
	db      TxStarter
	reader  UserReader
	writer  UserWriter
	balance BalanceCreator
	jwt     TokenPairGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(db TxStarter, reader UserReader, writer UserWriter, balance BalanceCreator, jwt TokenPairGenerator) *AuthService {
	return &AuthService{
		db:      db,
		reader:  reader,
		writer:  writer,
		balance: balance,
		jwt:     jwt,
	}
}

// Register creates a new user together with its initial credit balance and
// returns an access/refresh token pair. The user and balance rows are written
// in one transaction so a registered user always has a balance.
func (svc *AuthService) Register(ctx context.Context, username, password string) (access, refresh string, err error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return "", "", err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username)
		return "", "", ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", "", err
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "err", err)
		return "", "", err
	}

	txCtx := repositories.WithTx(ctx, tx)

	userID, err := svc.writer.Save(txCtx, username, string(hashedPassword))
	if err != nil {
		tx.Rollback()
		// The exists check above is not atomic with the insert, so a
		// concurrent registration can still hit the unique constraint.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return "", "", err
	}

	if err := svc.balance.Save(txCtx, userID, initialBalance); err != nil {
		tx.Rollback()
		logger.Log.Errorw("failed to create balance", "userID", userID, "err", err)
		return "", "", err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit registration", "err", err)
		return "", "", err
	}

	access, err = svc.jwt.Generate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return "", "", err
	}

	refresh, err = svc.jwt.GenerateRefresh(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return "", "", err
	}

	return access, refresh, nil
}
