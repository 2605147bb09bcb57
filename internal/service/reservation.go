package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/afriride/travel-booking/internal/metrics"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/store"
)

// Reservation is a stored booking decorated for display.
type Reservation struct {
	model.Booking
	Status     string           `json:"status"`
	TypeInfo   model.TypeInfo   `json:"type_info"`
	StatusInfo model.StatusInfo `json:"status_info"`
}

// ReservationService looks up a customer's bookings by email.
type ReservationService struct {
	bookings store.Bookings
}

// NewReservationService returns a ReservationService reading from b.
func NewReservationService(b store.Bookings) *ReservationService {
	return &ReservationService{bookings: b}
}

// NormalizeEmail trims and lower-cases an address for lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Lookup returns the bookings stored under email, newest first.  No
// matches is an empty slice, not an error.
func (s *ReservationService) Lookup(ctx context.Context, email string) ([]Reservation, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	q := store.Query{}.Eq("customer_email", email).OrderBy(store.Desc("created_at"))
	rows, err := s.bookings.Bookings(ctx, q)
	if err != nil {
		log.Printf("reservations: lookup failed: %v", err)
		metrics.ReservationLookups.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	out := make([]Reservation, 0, len(rows))
	for _, b := range rows {
		status := b.EffectiveStatus()
		out = append(out, Reservation{
			Booking:    b,
			Status:     status,
			TypeInfo:   b.BookingType.Info(),
			StatusInfo: model.StatusDisplay(status),
		})
	}
	outcome := "found"
	if len(out) == 0 {
		outcome = "empty"
	}
	metrics.ReservationLookups.WithLabelValues(outcome).Inc()
	return out, nil
}
