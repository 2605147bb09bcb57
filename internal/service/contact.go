package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/metrics"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/queue"
	"github.com/afriride/travel-booking/internal/store"
)

// ContactService stores contact form messages.
type ContactService struct {
	inquiries store.Inquiries
	events    EventPublisher
}

// NewContactService wires a ContactService.  A nil events publisher
// disables notifications.
func NewContactService(in store.Inquiries, events EventPublisher) *ContactService {
	if events == nil {
		events = NopPublisher
	}
	return &ContactService{inquiries: in, events: events}
}

// ValidateInquiry checks the required fields and the subject.
func ValidateInquiry(in model.ContactInquiry) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "is required"
	}
	if email := strings.TrimSpace(in.Email); email == "" {
		fields["email"] = "is required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fields["email"] = "is not a valid email address"
	}
	if s := strings.TrimSpace(in.Subject); s == "" {
		fields["subject"] = "is required"
	} else if !model.IsContactSubject(s) {
		fields["subject"] = "is not a known subject"
	}
	if strings.TrimSpace(in.Message) == "" {
		fields["message"] = "is required"
	}
	if len(fields) > 0 {
		return &booking.ValidationError{Fields: fields}
	}
	return nil
}

// Submit validates and stores one inquiry.
func (s *ContactService) Submit(ctx context.Context, in model.ContactInquiry) (*model.ContactInquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	in.ID, in.Status, in.CreatedAt = "", "", nil

	if err := ValidateInquiry(in); err != nil {
		metrics.ContactInquiries.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}
	if err := s.inquiries.CreateInquiry(ctx, &in); err != nil {
		log.Printf("contact: create inquiry failed: %v", err)
		metrics.ContactInquiries.WithLabelValues(metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("%w: %v", ErrInquiryFailed, err)
	}
	metrics.ContactInquiries.WithLabelValues(metrics.ResultSuccess).Inc()

	received := time.Now().UTC()
	if in.CreatedAt != nil {
		received = in.CreatedAt.UTC()
	}
	ev := queue.ContactReceivedEvent{
		EventID:    uuid.NewString(),
		InquiryID:  in.ID,
		Name:       in.Name,
		Email:      in.Email,
		Subject:    in.Subject,
		ReceivedAt: received.Format(time.RFC3339),
	}
	if err := s.events.PublishContactReceived(ctx, ev); err != nil {
		log.Printf("contact: publish contact.received for %s: %v", in.ID, err)
	}
	return &in, nil
}
