package model

import (
	"strings"
	"time"
)

// BookingType tags which offering variant a booking references.
type BookingType string

const (
	BookingTransfer BookingType = "transfer"
	BookingHotel    BookingType = "hotel"
	BookingTour     BookingType = "tour"
)

// BookingTypes lists the variants in the order the site presents them.
var BookingTypes = []BookingType{BookingTransfer, BookingHotel, BookingTour}

// ParseBookingType maps a request tag onto a known BookingType.  Matching
// is case-insensitive; "transfers", "hotels" and "tours" are accepted too
// so that route segments can be passed straight through.
func ParseBookingType(s string) (BookingType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "s")
	for _, t := range BookingTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Booking status values.  New rows get StatusPending from the backend.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is a customer's reservation against one offering.  ID, Status
// and CreatedAt are filled in by the data service; they are omitted from
// insert payloads while still empty.
//
// Fields:
//
//	ServiceID      – ID of the referenced hotel, tour or transfer route.
//	BookingDate    – travel date; check-in date for hotels (YYYY-MM-DD).
//	NumberOfPeople – guests, participants or passengers.
//	TotalPrice     – unit price × nights or people, in euros.
type Booking struct {
	ID              string      `json:"id,omitempty"`
	BookingType     BookingType `json:"booking_type"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	BookingDate     string      `json:"booking_date"`
	ServiceID       string      `json:"service_id"`
	NumberOfPeople  int         `json:"number_of_people"`
	SpecialRequests string      `json:"special_requests,omitempty"`
	TotalPrice      float64     `json:"total_price"`
	Status          string      `json:"status,omitempty"`
	CreatedAt       *time.Time  `json:"created_at,omitempty"`
}

// EffectiveStatus returns the stored status, treating an empty value as
// pending the same way the reservation page does.
func (b Booking) EffectiveStatus() string {
	if b.Status == "" {
		return StatusPending
	}
	return b.Status
}
