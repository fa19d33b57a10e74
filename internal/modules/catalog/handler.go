package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coworking/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roomtypes", h.RoomTypes)
	rg.GET("/roomtypes/:id", h.RoomType)
	rg.GET("/timeslots", h.TimeSlots)
	rg.GET("/topup/amounts", h.TopupAmounts)
}

func (h *Handler) RoomTypes(c *gin.Context) {
	types, err := h.service.RoomTypes(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room types")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"room_types": types})
}

func (h *Handler) RoomType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room type id")
		return
	}

	rt, err := h.service.RoomType(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRoomTypeNotFound) {
			response.Fail(c, http.StatusNotFound, "NOT_FOUND", "Room type not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room type")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"room_type": rt})
}

func (h *Handler) TimeSlots(c *gin.Context) {
	slots, err := h.service.TimeSlots(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load time slots")
		return
	}

	views := make([]TimeSlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, NewTimeSlotView(s))
	}
	response.OK(c, http.StatusOK, gin.H{"time_slots": views})
}

func (h *Handler) TopupAmounts(c *gin.Context) {
	amounts, err := h.service.TopupAmounts(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load top-up amounts")
		return
	}

	views := make([]TopupAmountView, 0, len(amounts))
	for _, a := range amounts {
		views = append(views, NewTopupAmountView(a))
	}
	response.OK(c, http.StatusOK, gin.H{"amounts": views})
}
