package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingCompleted BookingStatus = "Completed"
)

type PaymentMethod string

const PaymentWallet PaymentMethod = "Wallet"

// Booking is the (user, room, time slot, date) reservation tuple. At most
// one Confirmed booking may exist per (room, time slot, date); the engine
// enforces this inside its transaction and Postgres backs it with a
// partial unique index.
type Booking struct {
	ID             int64         `json:"id" gorm:"primaryKey"`
	UserID         int64         `json:"user_id" gorm:"not null;index;uniqueIndex:uq_user_idempotency_key"`
	RoomID         int64         `json:"room_id" gorm:"not null;index:idx_room_slot_date"`
	TimeSlotID     int64         `json:"time_slot_id" gorm:"not null;index:idx_room_slot_date"`
	BookingDate    string        `json:"booking_date" gorm:"type:varchar(10);not null;index:idx_room_slot_date"`
	TotalPrice     int64         `json:"-" gorm:"not null"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(16);not null;default:'Confirmed'"`
	PaymentMethod  PaymentMethod `json:"payment_method" gorm:"type:varchar(16);not null;default:'Wallet'"`
	IdempotencyKey *string       `json:"-" gorm:"uniqueIndex:uq_user_idempotency_key"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (Booking) TableName() string { return "bookings" }
