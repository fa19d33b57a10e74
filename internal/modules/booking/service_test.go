package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"coworking/internal/config"
	"coworking/internal/domain"
	"coworking/internal/modules/wallet"
	"coworking/internal/repository"
)

type fixture struct {
	db      *gorm.DB
	service *Service

	roomType domain.RoomType
	room     domain.Room
	morning  domain.TimeSlot
	fullDay  domain.TimeSlot
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.RoomType{},
		&domain.Room{},
		&domain.TimeSlot{},
		&domain.Booking{},
		&domain.Transaction{},
	))

	// A single connection keeps concurrent transactions serialized the
	// same way every run.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	f := &fixture{db: db}

	f.roomType = domain.RoomType{Name: "Type A", Description: "Small meeting room"}
	require.NoError(t, db.Create(&f.roomType).Error)

	f.room = domain.Room{
		RoomTypeID: f.roomType.ID,
		Name:       "A-101",
		Capacity:   4,
		BasePrice:  50000, // 500.00
		Status:     domain.RoomAvailable,
	}
	require.NoError(t, db.Create(&f.room).Error)

	f.morning = domain.TimeSlot{Name: "Morning", StartTime: "08:00", EndTime: "12:00", PriceRate: 10000}
	require.NoError(t, db.Create(&f.morning).Error)

	f.fullDay = domain.TimeSlot{Name: "Full Day", StartTime: "08:00", EndTime: "17:00", PriceRate: 17500}
	require.NoError(t, db.Create(&f.fullDay).Error)

	refund := config.RefundPolicy{FullRefundDays: 7, PartialRefundDays: 3, PartialPercent: 50}
	f.service = NewService(db, repository.NewBookingRepository(db), refund, nil)
	return f
}

func (f *fixture) user(t *testing.T, username string, balance int64) *domain.User {
	t.Helper()
	u := &domain.User{
		Username:     username,
		PasswordHash: "x",
		Email:        username + "@test.local",
		Role:         domain.RoleUser,
		Balance:      balance,
		WalletStatus: domain.WalletActive,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateBookingDebitsWalletAtomically(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "alice", 100000) // 1000.00
	date := futureDate(10)

	b, user, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID:        u.ID,
		RoomID:        f.room.ID,
		TimeSlotID:    f.morning.ID,
		BookingDate:   date,
		DeclaredPrice: 50000,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, int64(50000), b.TotalPrice)
	assert.Equal(t, int64(50000), user.Balance) // 1000.00 - 500.00

	var room domain.Room
	require.NoError(t, f.db.First(&room, f.room.ID).Error)
	assert.Equal(t, domain.RoomUnavailable, room.Status)

	var txns []domain.Transaction
	require.NoError(t, f.db.Where("user_id = ?", u.ID).Find(&txns).Error)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.TransactionBooking, txns[0].Type)
	assert.Equal(t, int64(50000), txns[0].Amount)
	require.NotNil(t, txns[0].BookingID)
	assert.Equal(t, b.ID, *txns[0].BookingID)
}

func TestCreateBookingInsufficientFundsRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "bob", 10000) // 100.00, room costs 500.00
	date := futureDate(5)

	_, _, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID:        u.ID,
		RoomID:        f.room.ID,
		TimeSlotID:    f.morning.ID,
		BookingDate:   date,
		DeclaredPrice: 50000,
	})
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	var after domain.User
	require.NoError(t, f.db.First(&after, u.ID).Error)
	assert.Equal(t, int64(10000), after.Balance)

	var bookingCnt, txnCnt int64
	f.db.Model(&domain.Booking{}).Count(&bookingCnt)
	f.db.Model(&domain.Transaction{}).Count(&txnCnt)
	assert.Zero(t, bookingCnt)
	assert.Zero(t, txnCnt)

	var room domain.Room
	require.NoError(t, f.db.First(&room, f.room.ID).Error)
	assert.Equal(t, domain.RoomAvailable, room.Status)
}

func TestCreateBookingFullDayRate(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "carol", 100000)
	date := futureDate(10)

	// 500.00 * 1.75 = 875.00
	b, user, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID:        u.ID,
		RoomID:        f.room.ID,
		TimeSlotID:    f.fullDay.ID,
		BookingDate:   date,
		DeclaredPrice: 87500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(87500), b.TotalPrice)
	assert.Equal(t, int64(12500), user.Balance)
}

func TestCreateBookingRejectsClientPrice(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "dave", 100000)

	_, _, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID:        u.ID,
		RoomID:        f.room.ID,
		TimeSlotID:    f.fullDay.ID,
		BookingDate:   futureDate(10),
		DeclaredPrice: 50000, // base price, but Full Day costs 87500
	})
	require.ErrorIs(t, err, ErrPriceMismatch)

	var after domain.User
	require.NoError(t, f.db.First(&after, u.ID).Error)
	assert.Equal(t, int64(100000), after.Balance)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "erin", 100000)
	ctx := context.Background()

	cases := []CreateRequest{
		{UserID: u.ID, RoomID: 0, TimeSlotID: f.morning.ID, BookingDate: futureDate(1), DeclaredPrice: 50000},
		{UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID, BookingDate: "", DeclaredPrice: 50000},
		{UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID, BookingDate: "not-a-date", DeclaredPrice: 50000},
		{UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID, BookingDate: "2020-01-01", DeclaredPrice: 50000},
	}
	for _, req := range cases {
		_, _, err := f.service.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, _, err := f.service.CreateBooking(ctx, CreateRequest{
		UserID: u.ID, RoomID: 999, TimeSlotID: f.morning.ID,
		BookingDate: futureDate(1), DeclaredPrice: 50000,
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, _, err = f.service.CreateBooking(ctx, CreateRequest{
		UserID: u.ID, RoomID: f.room.ID, TimeSlotID: 999,
		BookingDate: futureDate(1), DeclaredPrice: 50000,
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDoubleBookingSameSlotRejected(t *testing.T) {
	f := newFixture(t)
	first := f.user(t, "frank", 100000)
	second := f.user(t, "grace", 100000)
	date := futureDate(10)

	req := CreateRequest{
		UserID: first.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: date, DeclaredPrice: 50000,
	}
	_, _, err := f.service.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	req.UserID = second.ID
	_, _, err = f.service.CreateBooking(context.Background(), req)
	require.ErrorIs(t, err, ErrRoomAlreadyBooked)

	var after domain.User
	require.NoError(t, f.db.First(&after, second.ID).Error)
	assert.Equal(t, int64(100000), after.Balance)

	cnt, err := repository.NewBookingRepository(f.db).CountConfirmed(
		context.Background(), f.room.ID, f.morning.ID, date)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestConcurrentBookingsOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	date := futureDate(10)

	const n = 8
	users := make([]*domain.User, n)
	for i := range users {
		users[i] = f.user(t, fmt.Sprintf("racer%d", i), 100000)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = f.service.CreateBooking(context.Background(), CreateRequest{
				UserID:        users[i].ID,
				RoomID:        f.room.ID,
				TimeSlotID:    f.morning.ID,
				BookingDate:   date,
				DeclaredPrice: 50000,
			})
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, ErrRoomAlreadyBooked)
		}
	}
	assert.Equal(t, 1, won)

	cnt, err := repository.NewBookingRepository(f.db).CountConfirmed(
		context.Background(), f.room.ID, f.morning.ID, date)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	// Exactly one wallet was debited.
	var debits int64
	f.db.Model(&domain.Transaction{}).Where("type = ?", domain.TransactionBooking).Count(&debits)
	assert.Equal(t, int64(1), debits)
}

func TestIdempotentReplayReturnsOriginalBooking(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "henry", 100000)
	date := futureDate(10)

	req := CreateRequest{
		UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: date, DeclaredPrice: 50000,
		IdempotencyKey: "req-abc-123",
	}

	first, _, err := f.service.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	replay, user, err := f.service.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)
	assert.Equal(t, int64(50000), user.Balance) // debited once

	var txnCnt int64
	f.db.Model(&domain.Transaction{}).Where("user_id = ?", u.ID).Count(&txnCnt)
	assert.Equal(t, int64(1), txnCnt)
}

func TestIdempotencyKeyScopedToUser(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice2", 100000)
	mallory := f.user(t, "mallory", 100000)
	ctx := context.Background()
	date := futureDate(10)

	first, _, err := f.service.CreateBooking(ctx, CreateRequest{
		UserID: alice.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: date, DeclaredPrice: 50000,
		IdempotencyKey: "shared-key-1",
	})
	require.NoError(t, err)

	// Same key from another user must not replay the first booking.
	_, _, err = f.service.CreateBooking(ctx, CreateRequest{
		UserID: mallory.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: date, DeclaredPrice: 50000,
		IdempotencyKey: "shared-key-1",
	})
	require.ErrorIs(t, err, ErrRoomAlreadyBooked)

	var after domain.User
	require.NoError(t, f.db.First(&after, mallory.ID).Error)
	assert.Equal(t, int64(100000), after.Balance)

	// A free slot goes through as that user's own booking.
	own, user, err := f.service.CreateBooking(ctx, CreateRequest{
		UserID: mallory.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: futureDate(11), DeclaredPrice: 50000,
		IdempotencyKey: "shared-key-1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, own.ID)
	assert.Equal(t, mallory.ID, own.UserID)
	assert.Equal(t, mallory.ID, user.ID)
	assert.Equal(t, int64(50000), user.Balance)
}

func TestCancelBookingFullRefund(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "iris", 100000)

	b, _, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: futureDate(10), DeclaredPrice: 50000,
	})
	require.NoError(t, err)

	cancelled, err := f.service.CancelBooking(context.Background(), b.ID, u.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	var after domain.User
	require.NoError(t, f.db.First(&after, u.ID).Error)
	assert.Equal(t, int64(100000), after.Balance)

	var refunds []domain.Transaction
	require.NoError(t, f.db.Where("user_id = ? AND type = ?", u.ID, domain.TransactionRefund).Find(&refunds).Error)
	require.Len(t, refunds, 1)
	assert.Equal(t, int64(50000), refunds[0].Amount)

	var room domain.Room
	require.NoError(t, f.db.First(&room, f.room.ID).Error)
	assert.Equal(t, domain.RoomAvailable, room.Status)
}

func TestCancelBookingPartialRefund(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "jack", 100000)

	// 4 days out: past the full-refund window, inside the 50% one.
	b, _, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: futureDate(4), DeclaredPrice: 50000,
	})
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), b.ID, u.ID, false)
	require.NoError(t, err)

	var after domain.User
	require.NoError(t, f.db.First(&after, u.ID).Error)
	assert.Equal(t, int64(75000), after.Balance) // 50000 back minus half
}

func TestCancelBookingNoRefundWindow(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "kate", 100000)

	b, _, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: futureDate(1), DeclaredPrice: 50000,
	})
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), b.ID, u.ID, false)
	require.NoError(t, err)

	var after domain.User
	require.NoError(t, f.db.First(&after, u.ID).Error)
	assert.Equal(t, int64(50000), after.Balance)

	var refundCnt int64
	f.db.Model(&domain.Transaction{}).Where("type = ?", domain.TransactionRefund).Count(&refundCnt)
	assert.Zero(t, refundCnt)
}

func TestCancelBookingPermissions(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "liam", 100000)
	other := f.user(t, "mona", 100000)

	b, _, err := f.service.CreateBooking(context.Background(), CreateRequest{
		UserID: owner.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: futureDate(10), DeclaredPrice: 50000,
	})
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), b.ID, other.ID, false)
	require.ErrorIs(t, err, ErrPermissionDenied)

	// An admin may cancel on the member's behalf.
	_, err = f.service.CancelBooking(context.Background(), b.ID, other.ID, true)
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), b.ID, owner.ID, false)
	require.ErrorIs(t, err, ErrNotCancellable)

	_, err = f.service.CancelBooking(context.Background(), 999, owner.ID, false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAvailableRoomsReflectsBookingLifecycle(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "nina", 100000)
	ctx := context.Background()
	date := futureDate(10)

	rooms, err := f.service.AvailableRooms(ctx, "Type A", date, &f.morning.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, f.room.ID, rooms[0].ID)

	b, _, err := f.service.CreateBooking(ctx, CreateRequest{
		UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: date, DeclaredPrice: 50000,
	})
	require.NoError(t, err)

	rooms, err = f.service.AvailableRooms(ctx, "Type A", date, &f.morning.ID)
	require.NoError(t, err)
	assert.Empty(t, rooms)

	_, err = f.service.CancelBooking(ctx, b.ID, u.ID, false)
	require.NoError(t, err)

	rooms, err = f.service.AvailableRooms(ctx, "Type A", date, &f.morning.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestAvailableRoomsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.AvailableRooms(ctx, "", futureDate(1), nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.AvailableRooms(ctx, "Type A", "", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.service.AvailableRooms(ctx, "Type A", "31-12-2030", nil)
	assert.ErrorIs(t, err, ErrValidation)

	rooms, err := f.service.AvailableRooms(ctx, "No Such Type", futureDate(1), nil)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestHistoryListsUserBookings(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "omar", 1000000)
	other := f.user(t, "pia", 1000000)
	ctx := context.Background()

	_, _, err := f.service.CreateBooking(ctx, CreateRequest{
		UserID: u.ID, RoomID: f.room.ID, TimeSlotID: f.morning.ID,
		BookingDate: futureDate(10), DeclaredPrice: 50000,
	})
	require.NoError(t, err)

	_, _, err = f.service.CreateBooking(ctx, CreateRequest{
		UserID: other.ID, RoomID: f.room.ID, TimeSlotID: f.fullDay.ID,
		BookingDate: futureDate(11), DeclaredPrice: 87500,
	})
	require.NoError(t, err)

	rows, err := f.service.History(ctx, u.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A-101", rows[0].RoomName)
	assert.Equal(t, "Type A", rows[0].RoomType)
	assert.Equal(t, "Morning", rows[0].SlotName)
	assert.Equal(t, domain.BookingConfirmed, rows[0].Status)
}
