package wallet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coworking/internal/domain"
	"coworking/internal/pkg/money"
	"coworking/internal/pkg/response"
)

// Notifier pushes wallet events to connected clients; delivery is
// best-effort.
type Notifier interface {
	Publish(userID int64, event string, data any)
}

type Handler struct {
	service *Service
	events  Notifier
}

func NewHandler(service *Service, events Notifier) *Handler {
	return &Handler{service: service, events: events}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/wallet/topup", h.Topup)
	rg.GET("/wallet/transactions", h.Transactions)
}

func (h *Handler) Topup(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	amount, err := money.Parse(req.Amount)
	if err != nil || amount <= 0 {
		response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid top-up amount")
		return
	}

	user, txn, err := h.service.Topup(c.Request.Context(), userID, amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.Fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid top-up amount")
		case errors.Is(err, ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, ErrWalletInactive):
			response.Fail(c, http.StatusForbidden, "WALLET_INACTIVE", "Wallet is deactivated")
		default:
			response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to top up wallet")
		}
		return
	}

	if h.events != nil {
		h.events.Publish(user.ID, "wallet_topup", NewTransactionView(*txn))
	}

	response.OK(c, http.StatusOK, gin.H{
		"user":        NewUserView(user),
		"transaction": NewTransactionView(*txn),
	})
}

func (h *Handler) Transactions(c *gin.Context) {
	userID := c.GetInt64("user_id")

	filter := HistoryFilter{
		Type:   domain.TransactionType(c.Query("type")),
		Limit:  intQuery(c, "limit"),
		Offset: intQuery(c, "offset"),
	}

	txns, err := h.service.History(c.Request.Context(), userID, filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load transactions")
		return
	}

	views := make([]TransactionView, 0, len(txns))
	for _, t := range txns {
		views = append(views, NewTransactionView(t))
	}
	response.OK(c, http.StatusOK, gin.H{"transactions": views})
}

func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}
