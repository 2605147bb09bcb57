package model

import "time"

// ContactInquiry is a message sent through the contact form.  Phone is
// optional; Status is assigned by the backend.
type ContactInquiry struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	Status    string     `json:"status,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// ContactSubjects are the subjects offered by the contact form.
var ContactSubjects = []string{
	"General Inquiry",
	"Booking Question",
	"Airport Transfer",
	"Hotel Accommodation",
	"Tour Packages",
	"Payment Issue",
	"Complaint",
	"Feedback",
}

// IsContactSubject reports whether s is one of ContactSubjects.
func IsContactSubject(s string) bool {
	for _, v := range ContactSubjects {
		if v == s {
			return true
		}
	}
	return false
}
