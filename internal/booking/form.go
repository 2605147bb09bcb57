// Package booking holds the booking form shared by the hotel, tour and
// transfer flows: validation, price computation, record assembly and a
// generic controller that drives one form through submission.
package booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/pricing"
)

// MaxHotelGuests caps the guest count on a hotel booking regardless of
// the number of rooms available.
const MaxHotelGuests = 10

// Form is the customer input of a booking form.  CheckInDate and
// CheckOutDate are used by hotel bookings; BookingDate by tours and
// transfers.  When a hotel form leaves CheckInDate empty, BookingDate is
// taken as the check-in.
type Form struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	BookingDate     string `json:"booking_date,omitempty"`
	CheckInDate     string `json:"check_in_date,omitempty"`
	CheckOutDate    string `json:"check_out_date,omitempty"`
	NumberOfPeople  int    `json:"number_of_people"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// NewForm returns an empty form with one person selected.
func NewForm() Form { return Form{NumberOfPeople: 1} }

// Request is a form bound to the offering it books.
type Request struct {
	Type      model.BookingType `json:"booking_type"`
	ServiceID string            `json:"service_id"`
	Form
}

func (f Form) checkIn() string {
	if strings.TrimSpace(f.CheckInDate) != "" {
		return f.CheckInDate
	}
	return f.BookingDate
}

// Quote computes the price summary for f against o.  Incomplete input
// gives a zero quote with ShowSummary false rather than an error, so the
// summary can be recomputed on every change.
func Quote(o model.Offering, f Form) pricing.Quote {
	if o.Kind() == model.BookingHotel {
		q, err := pricing.StayQuote(o.UnitPrice(), f.checkIn(), f.CheckOutDate)
		if err != nil {
			return pricing.Quote{UnitPrice: o.UnitPrice(), Display: pricing.Format(0)}
		}
		return q
	}
	return pricing.PeopleQuote(o.UnitPrice(), f.NumberOfPeople)
}

// Validate checks f against the constraints of o.
func Validate(o model.Offering, f Form) error {
	errs := fieldErrors{}

	if strings.TrimSpace(f.CustomerName) == "" {
		errs.add("customer_name", "is required")
	}
	if email := strings.TrimSpace(f.CustomerEmail); email == "" {
		errs.add("customer_email", "is required")
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs.add("customer_email", "is not a valid email address")
	}
	if strings.TrimSpace(f.CustomerPhone) == "" {
		errs.add("customer_phone", "is required")
	}

	if f.NumberOfPeople < 1 {
		errs.add("number_of_people", "must be at least 1")
	} else if f.NumberOfPeople > o.Capacity() {
		errs.add("number_of_people", fmt.Sprintf("must not exceed %d", o.Capacity()))
	} else if o.Kind() == model.BookingHotel && f.NumberOfPeople > MaxHotelGuests {
		errs.add("number_of_people", fmt.Sprintf("must not exceed %d", MaxHotelGuests))
	}

	if o.Kind() == model.BookingHotel {
		validateStay(errs, f.checkIn(), f.CheckOutDate)
	} else if strings.TrimSpace(f.BookingDate) == "" {
		errs.add("booking_date", "is required")
	} else if _, err := pricing.ParseDate(f.BookingDate); err != nil {
		errs.add("booking_date", "is not a valid date")
	}

	return errs.err()
}

func validateStay(errs fieldErrors, checkIn, checkOut string) {
	in, inErr := pricing.ParseDate(checkIn)
	out, outErr := pricing.ParseDate(checkOut)
	switch {
	case strings.TrimSpace(checkIn) == "":
		errs.add("check_in_date", "is required")
	case inErr != nil:
		errs.add("check_in_date", "is not a valid date")
	}
	switch {
	case strings.TrimSpace(checkOut) == "":
		errs.add("check_out_date", "is required")
	case outErr != nil:
		errs.add("check_out_date", "is not a valid date")
	}
	if inErr == nil && outErr == nil && !out.After(in) {
		errs.add("check_out_date", "must be after check-in")
	}
}

// Build validates f and assembles the booking record for o.  The email is
// stored lower-cased so that reservation lookup, which case-folds its
// input, finds it.  Hotel bookings use the check-in as booking date and
// carry the check-out in the special requests.
func Build(o model.Offering, f Form) (model.Booking, error) {
	if err := Validate(o, f); err != nil {
		return model.Booking{}, err
	}
	q := Quote(o, f)

	b := model.Booking{
		BookingType:     o.Kind(),
		CustomerName:    strings.TrimSpace(f.CustomerName),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(f.CustomerEmail)),
		CustomerPhone:   strings.TrimSpace(f.CustomerPhone),
		BookingDate:     strings.TrimSpace(f.BookingDate),
		ServiceID:       o.OfferingID(),
		NumberOfPeople:  f.NumberOfPeople,
		SpecialRequests: strings.TrimSpace(f.SpecialRequests),
		TotalPrice:      q.Total,
	}
	if o.Kind() == model.BookingHotel {
		b.BookingDate = strings.TrimSpace(f.checkIn())
		b.SpecialRequests = strings.TrimSpace(fmt.Sprintf("Check-out: %s. %s",
			strings.TrimSpace(f.CheckOutDate), b.SpecialRequests))
	}
	return b, nil
}
