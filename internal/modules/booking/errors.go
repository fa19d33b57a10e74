package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrRoomNotFound      = errors.New("room not found")
	ErrSlotNotFound      = errors.New("time slot not found")
	ErrRoomAlreadyBooked = errors.New("room already booked for this slot and date")
	ErrPriceMismatch     = errors.New("declared price does not match server price")
	ErrBookingConflict   = errors.New("booking conflict, safe to retry")
	ErrNotFound          = errors.New("booking not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotCancellable    = errors.New("only confirmed bookings can be cancelled")
)
