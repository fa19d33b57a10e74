package catalog

import (
	"coworking/internal/domain"
	"coworking/internal/pkg/money"
)

type TimeSlotView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	// Multiplier as a decimal string, e.g. "1.00" or "1.75".
	PriceMultiplier string `json:"price_multiplier"`
}

func NewTimeSlotView(s domain.TimeSlot) TimeSlotView {
	return TimeSlotView{
		ID:              s.ID,
		Name:            s.Name,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		PriceMultiplier: money.Format(s.PriceRate / 100),
	}
}

type TopupAmountView struct {
	ID     int64  `json:"id"`
	Amount string `json:"amount"`
}

func NewTopupAmountView(a domain.TopupAmount) TopupAmountView {
	return TopupAmountView{ID: a.ID, Amount: money.Format(a.Amount)}
}
