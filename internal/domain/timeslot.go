package domain

// RateScale is the basis-point scale for slot price rates: 10000 means
// the base price unchanged, 17500 means x1.75.
const RateScale = 10000

// TimeSlot is immutable reference data (Morning, Afternoon, Full Day).
// Start and end are display-only "HH:MM" strings; bookings bind to the
// slot id, never to clock times.
type TimeSlot struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	StartTime string `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime   string `json:"end_time" gorm:"type:varchar(5);not null"`
	PriceRate int64  `json:"-" gorm:"not null;default:10000"`
}

func (TimeSlot) TableName() string { return "time_slots" }

// TopupAmount is a preset top-up denomination offered to members.
type TopupAmount struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	Amount int64 `json:"-" gorm:"uniqueIndex;not null"`
}

func (TopupAmount) TableName() string { return "topup_amounts" }
