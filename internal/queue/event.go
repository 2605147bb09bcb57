// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names.  Both are durable and fed through the default exchange.
const (
	BookingCreatedQueue  = "booking.created"
	ContactReceivedQueue = "contact.received"
)

// BookingCreatedEvent is published after a booking row has been stored.
// It carries enough detail for the notification log without another
// round trip to the data service.
type BookingCreatedEvent struct {
	EventID        string  `json:"event_id"`
	BookingID      string  `json:"booking_id"`
	BookingType    string  `json:"booking_type"`
	ServiceID      string  `json:"service_id"`
	ServiceName    string  `json:"service_name"`
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	BookingDate    string  `json:"booking_date"`
	NumberOfPeople int     `json:"number_of_people"`
	TotalPrice     float64 `json:"total_price"`
	CreatedAt      string  `json:"created_at"`
}

// ContactReceivedEvent is published after a contact inquiry is stored.
type ContactReceivedEvent struct {
	EventID    string `json:"event_id"`
	InquiryID  string `json:"inquiry_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	ReceivedAt string `json:"received_at"`
}
