// Package ledger is the typed storage layer over the users and transactions
// tables. Positions and cash deltas are always derived from the append-only
// transactions table; nothing here updates or deletes a ledger row.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"paper_trader/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInsufficientCash  = errors.New("cash would go negative")
)

// Position is the net share count a user holds in one symbol.
type Position struct {
	Symbol string
	Stock  string
	Shares int64
}

// Store wraps a GORM connection
type Store struct {
	db *gorm.DB
}

// NewStore creates a ledger store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser inserts a user with the given starting cash
func (s *Store) CreateUser(ctx context.Context, username, hash string, cash decimal.Decimal) (*domain.User, error) {
	user := &domain.User{Username: username, Hash: hash, Cash: cash}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UserByUsername retrieves a user by username
func (s *Store) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findUser(s.db.WithContext(ctx).Where("username = ?", username))
}

// UserByID retrieves a user by id
func (s *Store) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.findUser(s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *Store) findUser(q *gorm.DB) (*domain.User, error) {
	var user domain.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Positions sums shares per symbol for a user, skipping fully liquidated
// symbols. Rows come back in the order each symbol was first traded.
func (s *Store) Positions(ctx context.Context, userID uint) ([]Position, error) {
	var positions []Position
	err := s.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select("symbol, MAX(stock) AS stock, SUM(shares) AS shares").
		Where("user_id = ?", userID).
		Group("symbol").
		Having("SUM(shares) <> 0").
		Order("MIN(id)").
		Scan(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum positions: %w", err)
	}
	return positions, nil
}

// History returns every ledger row of a user in insertion order
func (s *Store) History(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return txs, nil
}

// Atomically runs fn inside one database transaction. Any error returned by
// fn rolls back everything fn wrote.
func (s *Store) Atomically(ctx context.Context, fn func(tx *Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Tx{db: tx})
	})
}

// Tx exposes the ledger operations that must run inside Atomically
type Tx struct {
	db *gorm.DB
}

// LockUser reads the user row and holds a row lock on it until the
// transaction ends, serializing trades of the same user.
func (t *Tx) LockUser(userID uint) (*domain.User, error) {
	q := t.db
	// SQLite has no row locks; its single writer connection already serializes
	if t.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var user domain.User
	if err := q.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return &user, nil
}

// Position returns the summed shares of one symbol. No rows is a zero
// position, not an error.
func (t *Tx) Position(userID uint, symbol string) (int64, error) {
	var shares int64
	err := t.db.Model(&domain.Transaction{}).
		Select("COALESCE(SUM(shares), 0)").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&shares).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum position: %w", err)
	}
	return shares, nil
}

// Append adds a ledger row
func (t *Tx) Append(entry *domain.Transaction) error {
	if err := t.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// AdjustCash adds delta to the cash of a user returned by LockUser and writes
// the new balance. The sum is computed in decimal here rather than in SQL,
// since SQLite keeps decimal columns as floating point.
func (t *Tx) AdjustCash(user *domain.User, delta decimal.Decimal) error {
	cash := user.Cash.Add(delta)
	if cash.IsNegative() {
		return ErrInsufficientCash
	}
	if err := t.db.Model(&domain.User{}).Where("id = ?", user.ID).Update("cash", cash).Error; err != nil {
		return fmt.Errorf("failed to update cash: %w", err)
	}
	user.Cash = cash
	return nil
}
