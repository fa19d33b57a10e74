package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"coworking/internal/domain"
	"coworking/internal/pkg/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logger.Infof("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	logger.Infof("using SQLite: %s", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. On Postgres it also installs the partial
// unique index that backs the one-Confirmed-booking-per-(room, slot, date)
// invariant; SQLite deployments rely on the engine's in-transaction
// re-check alone.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.RoomType{},
		&domain.Room{},
		&domain.TimeSlot{},
		&domain.TopupAmount{},
		&domain.Booking{},
		&domain.Transaction{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS uq_confirmed_room_slot_date
ON bookings (room_id, time_slot_id, booking_date)
WHERE status = 'Confirmed'
`).Error
	}
	return nil
}
