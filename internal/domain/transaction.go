package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact money arithmetic
)

// Transaction is one append-only ledger entry. Shares and Holding are signed:
// a buy has positive shares and a negative holding (cash leaving the account),
// a sell the opposite.
type Transaction struct {
	ID           uint            `gorm:"primaryKey" json:"id"`                                  // Primary key
	UserID       uint            `gorm:"index:idx_user_symbol;not null" json:"user_id"`         // Foreign key to User
	User         *User           `gorm:"constraint:OnDelete:RESTRICT" json:"-"`                 // Owning user
	Symbol       string          `gorm:"index:idx_user_symbol;size:16;not null" json:"symbol"` // Ticker, the position key
	Stock        string          `gorm:"not null" json:"stock"`                                 // Display name at execution time
	Price        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`              // Per-share price at execution
	Shares       int64           `gorm:"not null" json:"shares"`                                // +buy / -sell
	Holding      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"holding"`            // Cash delta
	PurchaseTime time.Time       `gorm:"autoCreateTime" json:"purchase_time"`                   // Execution timestamp
}
