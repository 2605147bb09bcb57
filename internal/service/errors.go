package service

import "errors"

var (
	// ErrEmailRequired is returned by Lookup for a blank email.
	ErrEmailRequired = errors.New("email is required")
	// ErrLookupFailed wraps any failure of the reservation query.
	ErrLookupFailed = errors.New("reservation lookup failed")
	// ErrInquiryFailed wraps any failure of the inquiry insert.
	ErrInquiryFailed = errors.New("inquiry submission failed")
)
