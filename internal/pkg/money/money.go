// Package money handles two-decimal fixed-point amounts. Everything is
// stored as int64 satang; floats never touch monetary values.
package money

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// Parse converts a decimal string like "500", "500.5" or "500.00" into
// satang. More than two fraction digits is an error, not a rounding.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return 0, ErrInvalidAmount
	}
	// 15 whole digits keeps the satang value inside int64.
	if len(whole) > 15 {
		return 0, ErrInvalidAmount
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var v int64
	for _, c := range whole + frac {
		if c < '0' || c > '9' {
			return 0, ErrInvalidAmount
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v, nil
}

// Format renders satang as a two-decimal string: 50000 -> "500.00".
func Format(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ApplyRate multiplies an amount by a basis-point rate (10000 = x1) with
// round-half-up to the nearest satang.
func ApplyRate(amount, rate, scale int64) int64 {
	return (amount*rate + scale/2) / scale
}
