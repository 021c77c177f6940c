// Package trade executes buy and sell orders against the ledger at the live
// quote price.
package trade

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"paper_trader/internal/domain"
	"paper_trader/internal/ledger"
	"paper_trader/internal/quote"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Engine validates and commits trades
type Engine struct {
	Store  *ledger.Store
	Quotes quote.Provider
}

// NewEngine creates a trade engine
func NewEngine(store *ledger.Store, quotes quote.Provider) *Engine {
	return &Engine{Store: store, Quotes: quotes}
}

// ParseShares accepts only a plain run of ASCII digits denoting a positive
// integer.
func ParseShares(raw string) (int64, error) {
	if raw == "" {
		return 0, domain.NewError(domain.ErrInvalidInput, "Invalid input")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, domain.NewError(domain.ErrInvalidInput, "Invalid input")
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.NewError(domain.ErrInvalidInput, "Invalid input")
	}
	return n, nil
}

// Resolve looks up a symbol, translating provider failures into user errors
func (e *Engine) Resolve(ctx context.Context, symbol string) (*quote.Quote, error) {
	symbol = quote.Normalize(symbol)
	if symbol == "" {
		return nil, domain.NewError(domain.ErrValidation, "Missing symbol")
	}
	q, err := e.Quotes.Lookup(ctx, symbol)
	if errors.Is(err, quote.ErrNotFound) {
		return nil, domain.NewError(domain.ErrUnknownSymbol, "Stock does not exist")
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrQuoteUnavailable, "Quote service unavailable", err)
	}
	return q, nil
}

// Buy purchases shares of symbol for userID with the user's cash
func (e *Engine) Buy(ctx context.Context, userID uint, symbol, rawShares string) (*domain.Transaction, error) {
	q, err := e.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}
	n, err := ParseShares(rawShares)
	if err != nil {
		return nil, err
	}
	cost := q.Price.Mul(decimal.NewFromInt(n))

	entry := &domain.Transaction{
		UserID:  userID,
		Symbol:  q.Symbol,
		Stock:   q.Name,
		Price:   q.Price,
		Shares:  n,
		Holding: cost.Neg(),
	}
	err = e.Store.Atomically(ctx, func(tx *ledger.Tx) error {
		user, err := tx.LockUser(userID)
		if err != nil {
			return err
		}
		if cost.GreaterThan(user.Cash) {
			return domain.NewError(domain.ErrInsufficientFunds, "Not enough cash")
		}
		if err := tx.Append(entry); err != nil {
			return err
		}
		return tx.AdjustCash(user, entry.Holding)
	})
	if errors.Is(err, ledger.ErrInsufficientCash) {
		err = domain.NewError(domain.ErrInsufficientFunds, "Not enough cash")
	}
	if err != nil {
		return nil, e.fail("buy", userID, q.Symbol, n, err)
	}
	e.committed("buy", entry)
	return entry, nil
}

// Sell sells shares of symbol the user holds
func (e *Engine) Sell(ctx context.Context, userID uint, symbol, rawShares string) (*domain.Transaction, error) {
	q, err := e.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}
	n, err := ParseShares(rawShares)
	if err != nil {
		return nil, err
	}
	proceeds := q.Price.Mul(decimal.NewFromInt(n))

	entry := &domain.Transaction{
		UserID:  userID,
		Symbol:  q.Symbol,
		Stock:   q.Name,
		Price:   q.Price,
		Shares:  -n,
		Holding: proceeds,
	}
	err = e.Store.Atomically(ctx, func(tx *ledger.Tx) error {
		user, err := tx.LockUser(userID)
		if err != nil {
			return err
		}
		owned, err := tx.Position(userID, q.Symbol)
		if err != nil {
			return err
		}
		if owned < 0 {
			owned = -owned
		}
		if n > owned {
			return domain.NewError(domain.ErrInsufficientShares, "You don't have enough stocks to sell")
		}
		if err := tx.Append(entry); err != nil {
			return err
		}
		return tx.AdjustCash(user, entry.Holding)
	})
	if err != nil {
		return nil, e.fail("sell", userID, q.Symbol, n, err)
	}
	e.committed("sell", entry)
	return entry, nil
}

func (e *Engine) committed(side string, entry *domain.Transaction) {
	logrus.WithFields(logrus.Fields{
		"user_id": entry.UserID,
		"symbol":  entry.Symbol,
		"shares":  entry.Shares,
		"price":   entry.Price.String(),
		"holding": entry.Holding.String(),
		"type":    side,
	}).Info("Trade committed")
}

// fail logs a rejected trade and returns err, wrapping storage failures
func (e *Engine) fail(side string, userID uint, symbol string, n int64, err error) error {
	fields := logrus.Fields{"user_id": userID, "symbol": symbol, "shares": n, "type": side}
	var de *domain.Error
	if errors.As(err, &de) {
		logrus.WithFields(fields).WithField("reason", de.Message).Info("Trade rejected")
		return err
	}
	logrus.WithFields(fields).WithField("error", err.Error()).Error("Trade failed")
	return fmt.Errorf("%s %s: %w", side, symbol, err)
}
