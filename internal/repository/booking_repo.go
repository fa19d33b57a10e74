package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// UserBookingDetails is the booking-history row joined with room and slot
// reference data.
type UserBookingDetails struct {
	BookingID   int64                `gorm:"column:booking_id" json:"booking_id"`
	RoomID      int64                `gorm:"column:room_id" json:"room_id"`
	RoomName    string               `gorm:"column:room_name" json:"room_name"`
	RoomType    string               `gorm:"column:room_type" json:"room_type"`
	SlotName    string               `gorm:"column:slot_name" json:"slot_name"`
	BookingDate string               `gorm:"column:booking_date" json:"booking_date"`
	TotalPrice  int64                `gorm:"column:total_price" json:"-"`
	Status      domain.BookingStatus `gorm:"column:status" json:"status"`
	CreatedAt   time.Time            `gorm:"column:created_at" json:"created_at"`
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// AvailableRooms returns rooms of the given type whose status is
// Available and which carry no non-cancelled booking for the date (and
// slot, when one is given). Pure read; the booking engine re-checks
// inside its own transaction before committing.
func (r *BookingRepository) AvailableRooms(ctx context.Context, roomType, date string, timeSlotID *int64) ([]domain.Room, error) {
	sub := r.db.Model(&domain.Booking{}).
		Select("room_id").
		Where("booking_date = ? AND status <> ?", date, domain.BookingCancelled)
	if timeSlotID != nil {
		sub = sub.Where("time_slot_id = ?", *timeSlotID)
	}

	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("room_types.name = ?", roomType).
		Where("rooms.status = ?", domain.RoomAvailable).
		Where("rooms.id NOT IN (?)", sub).
		Order("rooms.id").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *BookingRepository) UserBookings(ctx context.Context, userID int64, limit, offset int) ([]UserBookingDetails, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []UserBookingDetails
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id AS booking_id,
			rooms.id AS room_id,
			rooms.name AS room_name,
			room_types.name AS room_type,
			time_slots.name AS slot_name,
			bookings.booking_date,
			bookings.total_price,
			bookings.status,
			bookings.created_at`).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Joins("JOIN time_slots ON time_slots.id = bookings.time_slot_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountConfirmed reports how many Confirmed bookings exist for the
// (room, slot, date) tuple.
func (r *BookingRepository) CountConfirmed(ctx context.Context, roomID, timeSlotID int64, date string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("room_id = ? AND time_slot_id = ? AND booking_date = ? AND status = ?",
			roomID, timeSlotID, date, domain.BookingConfirmed).
		Count(&cnt).Error
	return cnt, err
}
