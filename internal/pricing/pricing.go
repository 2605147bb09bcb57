// Package pricing computes booking durations and totals.  Amounts are
// multiplied in integer cents so that €0.10 × 3 is exactly €0.30.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used by the booking forms.
const DateLayout = "2006-01-02"

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts YYYY-MM-DD (taken as UTC midnight) or an RFC 3339
// timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Nights returns ceil(|checkOut - checkIn| / 1 day).  When either date is
// empty it returns 0 and no error.  Reversed dates still yield a positive
// count; rejecting them is up to the caller.
func Nights(checkIn, checkOut string) (int, error) {
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return 0, nil
	}
	in, err := ParseDate(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return 0, err
	}
	// Sub saturates near 292 years; plain millisecond arithmetic does not.
	diff := out.UnixMilli() - in.UnixMilli()
	if diff < 0 {
		diff = -diff
	}
	nights := diff / msPerDay
	if diff%msPerDay != 0 {
		nights++
	}
	return int(nights), nil
}

// Cents converts a euro amount to whole cents, rounding half away from zero.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Total multiplies a unit price by a quantity.  Non-positive quantities
// yield 0.
func Total(unit float64, qty int) float64 {
	if qty <= 0 {
		return 0
	}
	return float64(Cents(unit)*int64(qty)) / 100
}

// Format renders an amount the way the site shows prices, e.g. €300.00.
func Format(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}

// Quote is the price summary shown under a booking form.
type Quote struct {
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Nights      int     `json:"nights,omitempty"`
	Total       float64 `json:"total"`
	Display     string  `json:"display"`
	ShowSummary bool    `json:"show_summary"`
}

// StayQuote prices a hotel stay.  The summary is hidden while the night
// count is not positive.
func StayQuote(pricePerNight float64, checkIn, checkOut string) (Quote, error) {
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}
	total := Total(pricePerNight, nights)
	return Quote{
		UnitPrice:   pricePerNight,
		Quantity:    nights,
		Nights:      nights,
		Total:       total,
		Display:     Format(total),
		ShowSummary: nights > 0,
	}, nil
}

// PeopleQuote prices a tour or transfer for the given number of people.
func PeopleQuote(unit float64, people int) Quote {
	total := Total(unit, people)
	return Quote{
		UnitPrice:   unit,
		Quantity:    people,
		Total:       total,
		Display:     Format(total),
		ShowSummary: people > 0,
	}
}
