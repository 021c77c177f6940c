// Package quote looks up live stock prices.
package quote

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the symbol does not resolve to a stock.
var ErrNotFound = errors.New("symbol not found")

// Quote is the current price of one stock
type Quote struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Symbol string          `json:"symbol"`
}

// Provider resolves a ticker symbol to its current quote.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// Normalize trims and upper-cases a ticker symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
