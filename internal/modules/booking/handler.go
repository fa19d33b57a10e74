package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coworking/internal/domain"
	"coworking/internal/modules/wallet"
	"coworking/internal/pkg/money"
	"coworking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/available", h.AvailableRooms)
	rg.POST("/bookings", h.CreateBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
	rg.GET("/bookings/history", h.History)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	declared, err := money.Parse(req.TotalPrice)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid total price")
		return
	}

	b, user, err := h.service.CreateBooking(c.Request.Context(), CreateRequest{
		UserID:         userID,
		RoomID:         req.RoomID,
		TimeSlotID:     req.TimeSlotID,
		BookingDate:    req.BookingDate,
		DeclaredPrice:  declared,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	response.OK(c, http.StatusCreated, gin.H{
		"booking": NewBookingView(b),
		"user":    wallet.NewUserView(user),
	})
}

func (h *Handler) writeCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSlotNotFound):
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrPriceMismatch):
		response.Fail(c, http.StatusBadRequest, "PRICE_MISMATCH", "Declared price does not match the current price")
	case errors.Is(err, ErrRoomNotFound):
		response.Fail(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, wallet.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, wallet.ErrWalletInactive):
		response.Fail(c, http.StatusForbidden, "WALLET_INACTIVE", "Wallet is deactivated")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.Fail(c, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS", "Wallet balance is too low for this booking")
	case errors.Is(err, ErrRoomAlreadyBooked):
		response.Fail(c, http.StatusConflict, "ROOM_ALREADY_BOOKED", "Room is already booked for the selected slot and date")
	case errors.Is(err, ErrBookingConflict):
		response.Fail(c, http.StatusServiceUnavailable, "BOOKING_CONFLICT", "Booking conflict, please retry")
	default:
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
	}
}

func (h *Handler) CancelBooking(c *gin.Context) {
	userID := c.GetInt64("user_id")
	isAdmin := c.GetString("role") == string(domain.RoleAdmin)

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), bookingID, userID, isAdmin)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Fail(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "FORBIDDEN", "You do not own this booking")
		case errors.Is(err, ErrNotCancellable):
			response.Fail(c, http.StatusConflict, "NOT_CANCELLABLE", "Only confirmed bookings can be cancelled")
		default:
			response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{"booking": NewBookingView(b)})
}

func (h *Handler) AvailableRooms(c *gin.Context) {
	roomType := c.Query("roomType")
	date := c.Query("date")

	var slotID *int64
	if raw := c.Query("timeSlotId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid time slot id")
			return
		}
		slotID = &id
	}

	rooms, err := h.service.AvailableRooms(c.Request.Context(), roomType, date, slotID)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "roomType and date are required")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load available rooms")
		return
	}

	views := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, NewRoomView(r))
	}
	response.OK(c, http.StatusOK, gin.H{"available_rooms": views})
}

func (h *Handler) History(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	rows, err := h.service.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking history")
		return
	}

	views := make([]HistoryItemView, 0, len(rows))
	for _, row := range rows {
		views = append(views, HistoryItemView{
			BookingID:   row.BookingID,
			RoomID:      row.RoomID,
			RoomName:    row.RoomName,
			RoomType:    row.RoomType,
			SlotName:    row.SlotName,
			BookingDate: row.BookingDate,
			TotalPrice:  money.Format(row.TotalPrice),
			Status:      string(row.Status),
			CreatedAt:   row.CreatedAt,
		})
	}
	response.OK(c, http.StatusOK, gin.H{"bookings": views})
}
