package wallet

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coworking/internal/domain"
)

// Service is the wallet ledger: per-user balance plus an append-only
// transaction history. Every balance mutation appends exactly one
// transaction row in the same database transaction, so balance and
// ledger can never diverge.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Topup credits the user's balance. It always succeeds for a valid,
// active user.
func (s *Service) Topup(ctx context.Context, userID, amount int64) (*domain.User, *domain.Transaction, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	var user domain.User
	var txn *domain.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = Credit(tx, &user, userID, amount, domain.TransactionTopup, nil)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, txn, nil
}

type HistoryFilter struct {
	Type   domain.TransactionType
	Limit  int
	Offset int
}

func (s *Service) History(ctx context.Context, userID int64, filter HistoryFilter) ([]domain.Transaction, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var txns []domain.Transaction
	if err := q.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// Debit decrements the balance inside the caller's transaction, failing
// with ErrInsufficientFunds when the balance cannot cover the amount.
// The user row is locked for the rest of the transaction and the ledger
// entry is appended under the same commit. The updated user is written
// into out.
func Debit(tx *gorm.DB, out *domain.User, userID, amount, bookingID int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := lockUser(tx, out, userID); err != nil {
		return nil, err
	}
	if out.Balance < amount {
		return nil, ErrInsufficientFunds
	}

	out.Balance -= amount
	if err := tx.Model(&domain.User{}).Where("id = ?", userID).Update("balance", out.Balance).Error; err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		UserID:    userID,
		Type:      domain.TransactionBooking,
		Amount:    amount,
		BookingID: &bookingID,
	}
	if err := tx.Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// Credit increments the balance inside the caller's transaction and
// appends the matching ledger entry. bookingID is nil for top-ups.
func Credit(tx *gorm.DB, out *domain.User, userID, amount int64, txnType domain.TransactionType, bookingID *int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := lockUser(tx, out, userID); err != nil {
		return nil, err
	}

	out.Balance += amount
	if err := tx.Model(&domain.User{}).Where("id = ?", userID).Update("balance", out.Balance).Error; err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		UserID:    userID,
		Type:      txnType,
		Amount:    amount,
		BookingID: bookingID,
	}
	if err := tx.Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func lockUser(tx *gorm.DB, out *domain.User, userID int64) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(out, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if out.WalletStatus != domain.WalletActive {
		return ErrWalletInactive
	}
	return nil
}
