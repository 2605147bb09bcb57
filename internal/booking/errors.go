package booking

import (
	"errors"
	"sort"
	"strings"
)

// User-facing messages.  Failures are never classified further than this.
const (
	MsgBookingFailed = "Failed to create booking. Please try again."
	MsgInquiryFailed = "Failed to submit inquiry. Please try again."
	MsgLookupFailed  = "Failed to fetch bookings. Please try again."
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrOfferingNotFound means the selected hotel, tour or route does not exist.
	ErrOfferingNotFound = errors.New("offering not found")
	// ErrSubmitFailed wraps any failure of the single create call.
	ErrSubmitFailed = errors.New("booking submission failed")
	// ErrSubmitInFlight is returned while a previous submit is outstanding.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrClosed is returned when the form is not open.
	ErrClosed = errors.New("booking form is not open")
)

// ValidationError lists field problems keyed by the form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// UserMessage maps an error from the booking flow onto the text shown to
// the customer.
func UserMessage(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, ErrOfferingNotFound):
		return "The selected offer is no longer available."
	case errors.Is(err, ErrSubmitInFlight):
		return "Your booking is already being submitted."
	case errors.Is(err, ErrClosed):
		return "The booking form is closed. Choose an offer to start again."
	default:
		return MsgBookingFailed
	}
}
