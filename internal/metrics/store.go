package metrics

import (
	"context"
	"time"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/store"
)

// InstrumentedStore records the latency of every store call in
// DataServiceDuration.
type InstrumentedStore struct {
	next store.Store
}

var _ store.Store = (*InstrumentedStore)(nil)

// Instrument wraps s.
func Instrument(s store.Store) *InstrumentedStore { return &InstrumentedStore{next: s} }

func observe(op string, start time.Time) {
	DataServiceDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) Hotels(ctx context.Context, q store.Query) ([]model.Hotel, error) {
	defer observe("select_hotels", time.Now())
	return s.next.Hotels(ctx, q)
}

func (s *InstrumentedStore) Tours(ctx context.Context, q store.Query) ([]model.Tour, error) {
	defer observe("select_tours", time.Now())
	return s.next.Tours(ctx, q)
}

func (s *InstrumentedStore) TransferRoutes(ctx context.Context, q store.Query) ([]model.TransferRoute, error) {
	defer observe("select_transfer_routes", time.Now())
	return s.next.TransferRoutes(ctx, q)
}

func (s *InstrumentedStore) Bookings(ctx context.Context, q store.Query) ([]model.Booking, error) {
	defer observe("select_bookings", time.Now())
	return s.next.Bookings(ctx, q)
}

func (s *InstrumentedStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	defer observe("insert_booking", time.Now())
	return s.next.CreateBooking(ctx, b)
}

func (s *InstrumentedStore) CreateInquiry(ctx context.Context, in *model.ContactInquiry) error {
	defer observe("insert_contact_inquiry", time.Now())
	return s.next.CreateInquiry(ctx, in)
}
