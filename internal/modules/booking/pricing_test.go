package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"coworking/internal/domain"
)

func TestTotalPrice(t *testing.T) {
	cases := []struct {
		name      string
		basePrice int64
		rate      int64
		want      int64
	}{
		{"standard slot", 50000, 10000, 50000},
		{"full day", 50000, 17500, 87500},
		{"full day odd base", 33333, 17500, 58333}, // 58332.75 rounds up
		{"zero rate falls back to base", 50000, 0, 50000},
		{"negative rate falls back to base", 50000, -100, 50000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room := &domain.Room{BasePrice: tc.basePrice}
			slot := &domain.TimeSlot{PriceRate: tc.rate}
			assert.Equal(t, tc.want, TotalPrice(room, slot))
		})
	}
}
