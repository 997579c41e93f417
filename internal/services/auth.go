package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/sbilibin2017/gw-coin-exchange/internal/transactor"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or pin")
)

const (
	minUsernameLen = 2
	minPinLen      = 4
	signupNote     = "signup bonus"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error) // Returns nil when the user is unknown
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, pinHash string, createdAt time.Time) (bool, error) // False when the username is taken
	UpdatePin(ctx context.Context, username, pinHash string) (bool, error)                 // False when the user is unknown
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, username string, isAdmin bool) (string, error)
}

// AuthService handles registration, login and user administration.
type AuthService struct {
	tx        Transactor
	reader    UserReader
	writer    UserWriter
	balances  BalanceWriter
	txns      TransactionWriter
	jwt       JWTGenerator
	publisher TransactionPublisher
	bonus     decimal.Decimal
	cost      int
	now       func() time.Time
}

// NewAuthService creates a new AuthService instance. A positive bonus is
// credited in USDT to every registered user.
func NewAuthService(
	tx Transactor,
	reader UserReader,
	writer UserWriter,
	balances BalanceWriter,
	txns TransactionWriter,
	jwt JWTGenerator,
	publisher TransactionPublisher,
	bonus decimal.Decimal,
) *AuthService {
	return &AuthService{
		tx:        tx,
		reader:    reader,
		writer:    writer,
		balances:  balances,
		txns:      txns,
		jwt:       jwt,
		publisher: publisher,
		bonus:     bonus,
		cost:      bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// HashPin returns the bcrypt hash of a pin.
func HashPin(pin string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register registers a new user and credits the signup bonus.
func (svc *AuthService) Register(ctx context.Context, username, pin string) error {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		return validationError("username must be at least %d characters", minUsernameLen)
	}
	if err := validatePin(pin); err != nil {
		return err
	}

	hash, err := HashPin(pin, svc.cost)
	if err != nil {
		logger.Log.Errorw("failed to hash pin", "err", err)
		return err
	}

	err = svc.tx.Do(ctx, func(ctx context.Context) error {
		now := svc.now().UTC()
		created, err := svc.writer.Save(ctx, username, hash, now)
		if err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if !created {
			return ErrUserAlreadyExists
		}
		if !svc.bonus.IsPositive() {
			return nil
		}

		if err := svc.balances.Lock(ctx, username); err != nil {
			return fmt.Errorf("lock ledger of %s: %w", username, err)
		}
		if _, err := svc.balances.Credit(ctx, username, models.QuoteSymbol, svc.bonus); err != nil {
			return fmt.Errorf("credit signup bonus: %w", err)
		}
		bonus := models.Transaction{
			Username:   username,
			Type:       models.TransactionDeposit,
			CoinSymbol: models.QuoteSymbol,
			Amount:     svc.bonus,
			Total:      svc.bonus,
			Note:       signupNote,
			CreatedAt:  now,
		}
		bonus.ID, err = svc.txns.Save(ctx, bonus)
		if err != nil {
			return fmt.Errorf("save signup transaction: %w", err)
		}

		transactor.AfterCommit(ctx, func() { svc.publisher.Publish(ctx, bonus) })
		return nil
	})
	if err != nil {
		err = classify(err)
		logger.Log.Errorw("failed to register user", "username", username, "err", err)
		return err
	}

	logger.Log.Infow("user registered", "username", username, "bonus", svc.bonus)
	return nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, username, pin string) (string, error) {
	username = strings.TrimSpace(username)

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", classify(err)
	}
	if user == nil {
		logger.Log.Warnw("login for unknown user", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
		logger.Log.Warnw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.Username, user.IsAdmin)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// ListUsers returns all users without their pin hashes.
func (svc *AuthService) ListUsers(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, classify(err)
	}
	for i := range users {
		users[i].PinHash = ""
	}
	return users, nil
}

// ResetPin replaces the pin of an existing user.
func (svc *AuthService) ResetPin(ctx context.Context, username, pin string) error {
	if err := validatePin(pin); err != nil {
		return err
	}

	hash, err := HashPin(pin, svc.cost)
	if err != nil {
		logger.Log.Errorw("failed to hash pin", "err", err)
		return err
	}

	updated, err := svc.writer.UpdatePin(ctx, username, hash)
	if err != nil {
		logger.Log.Errorw("failed to update pin", "username", username, "err", err)
		return classify(err)
	}
	if !updated {
		return ErrUserDoesNotExist
	}

	logger.Log.Infow("pin reset", "username", username)
	return nil
}

func validatePin(pin string) error {
	if len(pin) < minPinLen {
		return validationError("pin must be at least %d characters", minPinLen)
	}
	return nil
}
