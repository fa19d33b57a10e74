package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTopup   TransactionType = "Topup"
	TransactionBooking TransactionType = "Booking"
	TransactionRefund  TransactionType = "Refund"
)

// Transaction is one append-only ledger row. Amount is always positive;
// the type says which direction the balance moved. Rows are never
// updated or deleted.
type Transaction struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    int64           `json:"user_id" gorm:"not null;index"`
	Type      TransactionType `json:"type" gorm:"type:varchar(16);not null;check:type IN ('Topup','Booking','Refund')"`
	Amount    int64           `json:"-" gorm:"not null"`
	BookingID *int64          `json:"booking_id,omitempty"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
