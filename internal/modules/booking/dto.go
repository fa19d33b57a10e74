package booking

import (
	"time"

	"coworking/internal/domain"
	"coworking/internal/pkg/money"
)

type CreateBookingRequest struct {
	RoomID      int64  `json:"room_id" binding:"required"`
	TimeSlotID  int64  `json:"time_slot_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
	// TotalPrice is what the client believes it will pay, as a
	// two-decimal string. The engine recomputes and rejects mismatches.
	TotalPrice string `json:"total_price" binding:"required"`
}

type BookingView struct {
	ID            int64      `json:"id"`
	RoomID        int64      `json:"room_id"`
	TimeSlotID    int64      `json:"time_slot_id"`
	BookingDate   string     `json:"booking_date"`
	TotalPrice    string     `json:"total_price"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	CreatedAt     time.Time  `json:"created_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

func NewBookingView(b *domain.Booking) BookingView {
	return BookingView{
		ID:            b.ID,
		RoomID:        b.RoomID,
		TimeSlotID:    b.TimeSlotID,
		BookingDate:   b.BookingDate,
		TotalPrice:    money.Format(b.TotalPrice),
		Status:        string(b.Status),
		PaymentMethod: string(b.PaymentMethod),
		CreatedAt:     b.CreatedAt,
		CancelledAt:   b.CancelledAt,
	}
}

type RoomView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	BasePrice string `json:"base_price"`
	Status    string `json:"status"`
}

func NewRoomView(r domain.Room) RoomView {
	return RoomView{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		BasePrice: money.Format(r.BasePrice),
		Status:    string(r.Status),
	}
}

type HistoryItemView struct {
	BookingID   int64     `json:"booking_id"`
	RoomID      int64     `json:"room_id"`
	RoomName    string    `json:"room_name"`
	RoomType    string    `json:"room_type"`
	SlotName    string    `json:"slot_name"`
	BookingDate string    `json:"booking_date"`
	TotalPrice  string    `json:"total_price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
