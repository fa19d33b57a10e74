package booking

import (
	"coworking/internal/domain"
	"coworking/internal/pkg/money"
)

// TotalPrice computes the authoritative price for a room and slot:
// base price times the slot's basis-point rate (Morning/Afternoon 10000,
// Full Day 17500), rounded half-up to the satang. Client-declared prices
// are only ever compared against this, never trusted.
func TotalPrice(room *domain.Room, slot *domain.TimeSlot) int64 {
	rate := slot.PriceRate
	if rate <= 0 {
		rate = domain.RateScale
	}
	return money.ApplyRate(room.BasePrice, rate, domain.RateScale)
}
