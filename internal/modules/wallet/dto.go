package wallet

import (
	"time"

	"coworking/internal/domain"
	"coworking/internal/pkg/money"
)

type TopupRequest struct {
	// Amount is a two-decimal string; monetary values never travel as
	// floats.
	Amount string `json:"amount" binding:"required"`
}

type UserView struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Balance      string `json:"balance"`
	WalletStatus string `json:"wallet_status"`
}

func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Balance:      money.Format(u.Balance),
		WalletStatus: string(u.WalletStatus),
	}
}

type TransactionView struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	BookingID *int64    `json:"booking_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTransactionView(t domain.Transaction) TransactionView {
	return TransactionView{
		ID:        t.ID.String(),
		Type:      string(t.Type),
		Amount:    money.Format(t.Amount),
		BookingID: t.BookingID,
		CreatedAt: t.CreatedAt,
	}
}
