// Package portfolio values a user's holdings from the ledger and live quotes.
package portfolio

import (
	"context"

	"paper_trader/internal/domain"
	"paper_trader/internal/ledger"
	"paper_trader/internal/quote"

	"github.com/shopspring/decimal"
)

// Holding is one open position marked to market
type Holding struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Value  decimal.Decimal `json:"value"`
}

// Summary is the portfolio view of one user
type Summary struct {
	Holdings []Holding       `json:"holdings"`
	Cash     decimal.Decimal `json:"cash"`
	Stocks   decimal.Decimal `json:"stocks"` // Sum of holding values
	Total    decimal.Decimal `json:"total"`  // Net worth
}

// Engine reads portfolios
type Engine struct {
	Store  *ledger.Store
	Quotes quote.Provider
}

// NewEngine creates a portfolio engine
func NewEngine(store *ledger.Store, quotes quote.Provider) *Engine {
	return &Engine{Store: store, Quotes: quotes}
}

// Holdings values every non-zero position at the current quote
func (e *Engine) Holdings(ctx context.Context, userID uint) (*Summary, error) {
	user, err := e.Store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	positions, err := e.Store.Positions(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Holdings: make([]Holding, 0, len(positions)), Cash: user.Cash}
	stocks := decimal.Zero
	for _, p := range positions {
		q, err := e.Quotes.Lookup(ctx, p.Symbol)
		if err != nil {
			return nil, domain.WrapError(domain.ErrQuoteUnavailable, "Server is currently down", err)
		}
		value := q.Price.Mul(decimal.NewFromInt(p.Shares))
		stocks = stocks.Add(value)
		name := q.Name
		if name == "" {
			name = p.Stock
		}
		// buys and sells both display as positive magnitudes
		summary.Holdings = append(summary.Holdings, Holding{
			Symbol: p.Symbol,
			Name:   name,
			Shares: abs(p.Shares),
			Price:  q.Price,
			Value:  value.Abs(),
		})
	}
	summary.Stocks = stocks
	summary.Total = user.Cash.Add(stocks)
	return summary, nil
}

// History returns the user's ledger in insertion order
func (e *Engine) History(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	txs, err := e.Store.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, domain.NewError(domain.ErrNoHistory, "Need to make a purchase to have history")
	}
	return txs, nil
}

// Symbols lists the symbols the user currently holds
func (e *Engine) Symbols(ctx context.Context, userID uint) ([]string, error) {
	positions, err := e.Store.Positions(ctx, userID)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, len(positions))
	for i, p := range positions {
		symbols[i] = p.Symbol
	}
	return symbols, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
