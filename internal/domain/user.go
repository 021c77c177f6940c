package domain

import (
	"time"

	"github.com/shopspring/decimal" // Exact money arithmetic
)

// User Model
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                                  // Primary key
	Username  string          `gorm:"uniqueIndex;size:64;not null" json:"username"`          // Unique username
	Hash      string          `gorm:"not null" json:"-"`                                     // bcrypt password hash
	Cash      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:10000" json:"cash"` // Virtual cash balance
	CreatedAt time.Time       `json:"created_at"`                                            // Registration time
}
