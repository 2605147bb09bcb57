package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/metrics"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/pricing"
	"github.com/afriride/travel-booking/internal/queue"
	"github.com/afriride/travel-booking/internal/store"
)

// BookingService validates and stores bookings.  It satisfies
// booking.Submitter so the same path serves the HTTP API and the bot.
type BookingService struct {
	catalog  *CatalogService
	bookings store.Bookings
	events   EventPublisher
}

// NewBookingService wires a BookingService.  A nil events publisher
// disables notifications.
func NewBookingService(catalog *CatalogService, bookings store.Bookings, events EventPublisher) *BookingService {
	if events == nil {
		events = NopPublisher
	}
	return &BookingService{catalog: catalog, bookings: bookings, events: events}
}

// Quote prices a form against the referenced offering without storing
// anything.
func (s *BookingService) Quote(ctx context.Context, req booking.Request) (model.Offering, pricing.Quote, error) {
	o, err := s.catalog.Offering(ctx, req.Type, req.ServiceID)
	if err != nil {
		return nil, pricing.Quote{}, err
	}
	return o, booking.Quote(o, req.Form), nil
}

// Submit loads the referenced offering, builds the record and issues
// exactly one create call.  Any failure of that call is reported as
// booking.ErrSubmitFailed; the underlying cause is only logged.
func (s *BookingService) Submit(ctx context.Context, req booking.Request) (*model.Booking, error) {
	o, err := s.catalog.Offering(ctx, req.Type, req.ServiceID)
	if err != nil {
		metrics.BookingSubmissions.WithLabelValues(string(req.Type), metrics.ResultInvalid).Inc()
		if errors.Is(err, booking.ErrOfferingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", booking.ErrSubmitFailed, err)
	}
	return s.SubmitFor(ctx, o, req.Form)
}

// SubmitFor is Submit with the offering already resolved.
func (s *BookingService) SubmitFor(ctx context.Context, o model.Offering, f booking.Form) (*model.Booking, error) {
	kind := string(o.Kind())
	b, err := booking.Build(o, f)
	if err != nil {
		metrics.BookingSubmissions.WithLabelValues(kind, metrics.ResultInvalid).Inc()
		return nil, err
	}

	if err := s.bookings.CreateBooking(ctx, &b); err != nil {
		log.Printf("booking: create %s booking for %s failed: %v", kind, o.OfferingID(), err)
		metrics.BookingSubmissions.WithLabelValues(kind, metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("%w: %v", booking.ErrSubmitFailed, err)
	}
	metrics.BookingSubmissions.WithLabelValues(kind, metrics.ResultSuccess).Inc()
	metrics.BookingRevenue.WithLabelValues(kind).Add(b.TotalPrice)

	if err := s.events.PublishBookingCreated(ctx, bookingEvent(o, b)); err != nil {
		log.Printf("booking: publish booking.created for %s: %v", b.ID, err)
	}
	return &b, nil
}

func bookingEvent(o model.Offering, b model.Booking) queue.BookingCreatedEvent {
	created := time.Now().UTC()
	if b.CreatedAt != nil {
		created = b.CreatedAt.UTC()
	}
	return queue.BookingCreatedEvent{
		EventID:        uuid.NewString(),
		BookingID:      b.ID,
		BookingType:    string(b.BookingType),
		ServiceID:      b.ServiceID,
		ServiceName:    o.DisplayName(),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		BookingDate:    b.BookingDate,
		NumberOfPeople: b.NumberOfPeople,
		TotalPrice:     b.TotalPrice,
		CreatedAt:      created.Format(time.RFC3339),
	}
}
