package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coworking/internal/config"
	"coworking/internal/domain"
	"coworking/internal/modules/wallet"
	"coworking/internal/pkg/logger"
	"coworking/internal/repository"
)

const dateLayout = "2006-01-02"

// Notifier pushes booking events to connected clients. Delivery is
// best-effort and never affects the committed state.
type Notifier interface {
	Publish(userID int64, event string, data any)
}

type CreateRequest struct {
	UserID         int64
	RoomID         int64
	TimeSlotID     int64
	BookingDate    string
	DeclaredPrice  int64
	IdempotencyKey string
}

// Service is the booking engine. CreateBooking runs the availability
// re-check, funds check and all writes inside one database transaction;
// no partial outcome is ever visible to concurrent requests.
type Service struct {
	db     *gorm.DB
	repo   *repository.BookingRepository
	refund config.RefundPolicy
	events Notifier
}

func NewService(db *gorm.DB, repo *repository.BookingRepository, refund config.RefundPolicy, events Notifier) *Service {
	return &Service{db: db, repo: repo, refund: refund, events: events}
}

// CreateBooking reserves the room and debits the wallet as one atomic
// unit. The room row is locked first, which serializes competing
// requests for the same room; the confirmed-booking re-check then runs
// under that lock. On Postgres a partial unique index backs the same
// invariant, so a lost race still cannot commit a duplicate.
func (s *Service) CreateBooking(ctx context.Context, req CreateRequest) (*domain.Booking, *domain.User, error) {
	if req.UserID == 0 || req.RoomID == 0 || req.TimeSlotID == 0 || req.BookingDate == "" {
		return nil, nil, ErrValidation
	}
	date, err := time.Parse(dateLayout, req.BookingDate)
	if err != nil {
		return nil, nil, ErrValidation
	}
	if date.Before(today()) {
		return nil, nil, ErrValidation
	}

	var booking domain.Booking
	var user domain.User
	replayed := false

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IdempotencyKey != "" {
			// Keys are scoped to the caller; another user's key never
			// replays someone else's booking.
			err := tx.Where("idempotency_key = ? AND user_id = ?", req.IdempotencyKey, req.UserID).
				First(&booking).Error
			if err == nil {
				replayed = true
				return tx.First(&user, booking.UserID).Error
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		var room domain.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		var slot domain.TimeSlot
		if err := tx.First(&slot, req.TimeSlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		total := TotalPrice(&room, &slot)
		if req.DeclaredPrice != total {
			return ErrPriceMismatch
		}

		var cnt int64
		if err := tx.Model(&domain.Booking{}).
			Where("room_id = ? AND time_slot_id = ? AND booking_date = ? AND status = ?",
				room.ID, slot.ID, req.BookingDate, domain.BookingConfirmed).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrRoomAlreadyBooked
		}

		booking = domain.Booking{
			UserID:        req.UserID,
			RoomID:        room.ID,
			TimeSlotID:    slot.ID,
			BookingDate:   req.BookingDate,
			TotalPrice:    total,
			Status:        domain.BookingConfirmed,
			PaymentMethod: domain.PaymentWallet,
		}
		if req.IdempotencyKey != "" {
			key := req.IdempotencyKey
			booking.IdempotencyKey = &key
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		if _, err := wallet.Debit(tx, &user, req.UserID, total, booking.ID); err != nil {
			return err
		}

		return tx.Model(&domain.Room{}).Where("id = ?", room.ID).
			Update("status", domain.RoomUnavailable).Error
	})
	if err != nil {
		return nil, nil, mapStorageErr(err)
	}

	if !replayed && s.events != nil {
		s.events.Publish(user.ID, "booking_confirmed", booking)
	}
	return &booking, &user, nil
}

// CancelBooking flips a Confirmed booking to Cancelled and credits the
// refund the policy allows, in one transaction. The room reverts to
// Available when no other Confirmed booking still references it.
func (s *Service) CancelBooking(ctx context.Context, bookingID, userID int64, isAdmin bool) (*domain.Booking, error) {
	var b domain.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if b.UserID != userID && !isAdmin {
			return ErrPermissionDenied
		}
		if b.Status != domain.BookingConfirmed {
			return ErrNotCancellable
		}

		now := time.Now()
		b.Status = domain.BookingCancelled
		b.CancelledAt = &now
		if err := tx.Model(&domain.Booking{}).Where("id = ?", b.ID).Updates(map[string]any{
			"status":       b.Status,
			"cancelled_at": b.CancelledAt,
		}).Error; err != nil {
			return err
		}

		if refund := s.refundAmount(b.TotalPrice, b.BookingDate); refund > 0 {
			var user domain.User
			if _, err := wallet.Credit(tx, &user, b.UserID, refund, domain.TransactionRefund, &b.ID); err != nil {
				return err
			}
		}

		var cnt int64
		if err := tx.Model(&domain.Booking{}).
			Where("room_id = ? AND status = ? AND id <> ?", b.RoomID, domain.BookingConfirmed, b.ID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return tx.Model(&domain.Room{}).Where("id = ?", b.RoomID).
				Update("status", domain.RoomAvailable).Error
		}
		return nil
	})
	if err != nil {
		return nil, mapStorageErr(err)
	}

	if s.events != nil {
		s.events.Publish(b.UserID, "booking_cancelled", b)
	}
	return &b, nil
}

// AvailableRooms is the read side: rooms of the type with Available
// status and no non-cancelled booking for (date, slot).
func (s *Service) AvailableRooms(ctx context.Context, roomType, date string, timeSlotID *int64) ([]domain.Room, error) {
	if roomType == "" || date == "" {
		return nil, ErrValidation
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrValidation
	}
	return s.repo.AvailableRooms(ctx, roomType, date, timeSlotID)
}

func (s *Service) History(ctx context.Context, userID int64, limit, offset int) ([]repository.UserBookingDetails, error) {
	return s.repo.UserBookings(ctx, userID, limit, offset)
}

func (s *Service) refundAmount(total int64, bookingDate string) int64 {
	date, err := time.Parse(dateLayout, bookingDate)
	if err != nil {
		return 0
	}
	days := int(date.Sub(today()).Hours() / 24)

	switch {
	case days >= s.refund.FullRefundDays:
		return total
	case days >= s.refund.PartialRefundDays:
		return (total*int64(s.refund.PartialPercent) + 50) / 100
	default:
		return 0
	}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// mapStorageErr translates low-level storage failures into the booking
// taxonomy. The partial unique index firing means another transaction
// confirmed the same tuple first; a lock timeout is a transient
// conflict the caller may retry.
func mapStorageErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_confirmed_room_slot_date" {
				return ErrRoomAlreadyBooked
			}
			return ErrBookingConflict
		case "55P03": // lock_not_available
			logger.Warnf("booking lock timeout: %v", pgErr)
			return ErrBookingConflict
		}
	}
	return err
}
