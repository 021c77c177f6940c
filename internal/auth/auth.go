package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paper_trader/internal/domain"
	"paper_trader/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Engine registers and authenticates users
type Engine struct {
	Store        *ledger.Store
	StartingCash decimal.Decimal
}

// NewEngine creates a new auth engine
func NewEngine(store *ledger.Store, startingCash decimal.Decimal) *Engine {
	return &Engine{Store: store, StartingCash: startingCash}
}

// Register creates a new user with hashed password and the starting cash
func (e *Engine) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	// Validate input
	if username == "" {
		return nil, domain.NewError(domain.ErrValidation, "Enter username!")
	}
	if password == "" {
		return nil, domain.NewError(domain.ErrValidation, "Enter password!")
	}
	if password != confirmation {
		return nil, domain.NewError(domain.ErrValidation, "Passwords don't match!")
	}

	// Hash the password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.NewError(domain.ErrValidation, "Password too long")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := e.Store.CreateUser(ctx, username, string(hash), e.StartingCash)
	if errors.Is(err, ledger.ErrDuplicateUsername) {
		return nil, domain.NewError(domain.ErrConflict, "Pick another username")
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"cash":     user.Cash.String(),
	}).Info("User registered")
	return user, nil
}

// Login verifies credentials
func (e *Engine) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.NewError(domain.ErrValidation, "must provide username")
	}
	if password == "" {
		return nil, domain.NewError(domain.ErrValidation, "must provide password")
	}
	user, err := e.Store.UserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ledger.ErrUserNotFound) {
		return nil, domain.NewError(domain.ErrAuth, "invalid username and/or password")
	}
	if err != nil {
		return nil, err
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		return nil, domain.NewError(domain.ErrAuth, "invalid username and/or password")
	}
	return user, nil
}
