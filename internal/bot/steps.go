package bot

import (
	"strconv"
	"strings"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/pricing"
)

// step is one question of the booking dialogue.
type step int

const (
	stepName step = iota
	stepEmail
	stepPhone
	stepDate
	stepCheckIn
	stepCheckOut
	stepPeople
	stepRequests
	stepReview
)

var prompts = map[step]string{
	stepName:     "Your full name?",
	stepEmail:    "Your email address?",
	stepPhone:    "Your phone number?",
	stepDate:     "Travel date (YYYY-MM-DD)?",
	stepCheckIn:  "Check-in date (YYYY-MM-DD)?",
	stepCheckOut: "Check-out date (YYYY-MM-DD)?",
	stepPeople:   "Number of people?",
	stepRequests: "Any special requests? Send - to skip.",
}

// stepsFor lists the questions asked for an offering variant.
func stepsFor(kind model.BookingType) []step {
	if kind == model.BookingHotel {
		return []step{stepName, stepEmail, stepPhone, stepCheckIn, stepCheckOut, stepPeople, stepRequests, stepReview}
	}
	return []step{stepName, stepEmail, stepPhone, stepDate, stepPeople, stepRequests, stepReview}
}

// inputError is a reply asking the user to correct an answer.
type inputError string

func (e inputError) Error() string { return string(e) }

const (
	errEmpty  inputError = "Please send a value."
	errDate   inputError = "Please use the format YYYY-MM-DD."
	errNumber inputError = "Please send a whole number of at least 1."
)

// apply stores one answer in f.  Only the shape of the input is checked
// here; capacity and date order are checked on submit.
func apply(f *booking.Form, st step, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errEmpty
	}
	switch st {
	case stepName:
		f.CustomerName = text
	case stepEmail:
		f.CustomerEmail = text
	case stepPhone:
		f.CustomerPhone = text
	case stepDate, stepCheckIn, stepCheckOut:
		if _, err := pricing.ParseDate(text); err != nil {
			return errDate
		}
		switch st {
		case stepDate:
			f.BookingDate = text
		case stepCheckIn:
			f.CheckInDate = text
		default:
			f.CheckOutDate = text
		}
	case stepPeople:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return errNumber
		}
		f.NumberOfPeople = n
	case stepRequests:
		if text == "-" {
			text = ""
		}
		f.SpecialRequests = text
	}
	return nil
}
