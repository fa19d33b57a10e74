package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"coworking/internal/database"
	"coworking/internal/domain"
	"coworking/internal/pkg/logger"
)

func main() {
	logger.Init()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "coworking.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		logger.L().Fatal("db connection failed: ", err)
	}

	logger.Infof("running migrations")
	if err := database.Migrate(db); err != nil {
		logger.L().Fatal("migrate failed: ", err)
	}

	// Clean in FK-safe order.
	logger.Infof("cleaning old data")
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM room_types")
	db.Exec("DELETE FROM time_slots")
	db.Exec("DELETE FROM topup_amounts")
	db.Exec("DELETE FROM users")

	logger.Infof("creating room types and rooms")
	types := []domain.RoomType{
		{Name: "Type A", Description: "Meeting room for up to 4 people"},
		{Name: "Type B", Description: "Meeting room for up to 8 people"},
		{Name: "Type C", Description: "Meeting room for up to 12 people"},
		{Name: "Training", Description: "Training room with projector and whiteboard"},
		{Name: "Event", Description: "Event hall for large gatherings"},
	}
	for i := range types {
		db.Create(&types[i])
	}

	// Base prices in satang.
	rooms := []struct {
		typeIdx  int
		name     string
		capacity int
		price    int64
	}{
		{0, "A-101", 4, 50000},
		{0, "A-102", 4, 50000},
		{0, "A-103", 4, 55000},
		{1, "B-201", 8, 80000},
		{1, "B-202", 8, 80000},
		{2, "C-301", 12, 120000},
		{2, "C-302", 12, 120000},
		{3, "T-401", 30, 250000},
		{3, "T-402", 30, 250000},
		{4, "E-501", 100, 1000000},
	}
	for _, r := range rooms {
		db.Create(&domain.Room{
			RoomTypeID: types[r.typeIdx].ID,
			Name:       r.name,
			Capacity:   r.capacity,
			BasePrice:  r.price,
			Status:     domain.RoomAvailable,
		})
	}

	logger.Infof("creating time slots")
	for _, s := range []domain.TimeSlot{
		{Name: "Morning", StartTime: "08:00", EndTime: "12:00", PriceRate: 10000},
		{Name: "Afternoon", StartTime: "13:00", EndTime: "17:00", PriceRate: 10000},
		{Name: "Full Day", StartTime: "08:00", EndTime: "17:00", PriceRate: 17500},
	} {
		db.Create(&s)
	}

	logger.Infof("creating top-up amounts")
	for _, amount := range []int64{10000, 30000, 50000, 100000, 200000, 500000} {
		db.Create(&domain.TopupAmount{Amount: amount})
	}

	logger.Infof("creating users")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		Username:     "admin",
		FirstName:    "Admin",
		LastName:     "User",
		PasswordHash: string(adminHash),
		Email:        "admin@coworking.local",
		Role:         domain.RoleAdmin,
		WalletStatus: domain.WalletActive,
	})

	for i := 1; i <= 3; i++ {
		hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		db.Create(&domain.User{
			Username:     fmt.Sprintf("demo%d", i),
			FirstName:    fmt.Sprintf("Demo%d", i),
			LastName:     "Member",
			PasswordHash: string(hash),
			Email:        fmt.Sprintf("demo%d@coworking.local", i),
			Phone:        fmt.Sprintf("08000000%02d", i),
			Role:         domain.RoleUser,
			Balance:      100000, // 1000.00 opening balance
			WalletStatus: domain.WalletActive,
		})
	}

	logger.Infof("seed complete")
}
