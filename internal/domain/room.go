package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomUnavailable RoomStatus = "Unavailable"
)

// RoomType is immutable reference data (Type A, Type B, Type C,
// Training, Event).
type RoomType struct {
	ID          int64  `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
}

func (RoomType) TableName() string { return "room_types" }

// Room status is a coarse per-room flag consulted by the read side only;
// the booking engine guards against double-booking through the bookings
// table, not through Status.
type Room struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	RoomTypeID int64      `json:"room_type_id" gorm:"not null;index"`
	Name       string     `json:"name" gorm:"not null"`
	Capacity   int        `json:"capacity"`
	BasePrice  int64      `json:"-" gorm:"not null"`
	Status     RoomStatus `json:"status" gorm:"type:varchar(16);default:'Available'"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
}

func (Room) TableName() string { return "rooms" }
