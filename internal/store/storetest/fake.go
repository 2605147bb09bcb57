// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/store"
)

// Fake keeps rows in slices and records every call.  Filtering supports
// the columns the site queries by; ordering supports the catalog and
// lookup orderings.  Set the Err fields to make the matching call fail.
type Fake struct {
	mu sync.Mutex

	HotelRows    []model.Hotel
	TourRows     []model.Tour
	RouteRows    []model.TransferRoute
	BookingRows  []model.Booking
	InquiryRows  []model.ContactInquiry
	Queries      []store.Query
	CreateCalls  int
	InquiryCalls int

	CatalogErr error
	CreateErr  error
	LookupErr  error
	InquiryErr error

	// Now stamps created rows; defaults to time.Now.
	Now func() time.Time
}

var _ store.Store = (*Fake)(nil)

func (f *Fake) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *Fake) record(q store.Query) {
	f.Queries = append(f.Queries, q)
}

// LastQuery returns the most recent query passed to any read method.
func (f *Fake) LastQuery() store.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Queries) == 0 {
		return store.Query{}
	}
	return f.Queries[len(f.Queries)-1]
}

func (f *Fake) Hotels(ctx context.Context, q store.Query) ([]model.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(q)
	if f.CatalogErr != nil {
		return nil, f.CatalogErr
	}
	return selectRows(f.HotelRows, q, hotelField)
}

func (f *Fake) Tours(ctx context.Context, q store.Query) ([]model.Tour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(q)
	if f.CatalogErr != nil {
		return nil, f.CatalogErr
	}
	return selectRows(f.TourRows, q, tourField)
}

func (f *Fake) TransferRoutes(ctx context.Context, q store.Query) ([]model.TransferRoute, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(q)
	if f.CatalogErr != nil {
		return nil, f.CatalogErr
	}
	return selectRows(f.RouteRows, q, routeField)
}

func (f *Fake) Bookings(ctx context.Context, q store.Query) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(q)
	if f.LookupErr != nil {
		return nil, f.LookupErr
	}
	return selectRows(f.BookingRows, q, bookingField)
}

func (f *Fake) CreateBooking(ctx context.Context, b *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	if f.CreateErr != nil {
		return f.CreateErr
	}
	now := f.now()
	b.ID = uuid.NewString()
	b.Status = model.StatusPending
	b.CreatedAt = &now
	f.BookingRows = append(f.BookingRows, *b)
	return nil
}

func (f *Fake) CreateInquiry(ctx context.Context, in *model.ContactInquiry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InquiryCalls++
	if f.InquiryErr != nil {
		return f.InquiryErr
	}
	now := f.now()
	in.ID = uuid.NewString()
	in.Status = "new"
	in.CreatedAt = &now
	f.InquiryRows = append(f.InquiryRows, *in)
	return nil
}

// field returns a comparable value for column, or ok false when the column
// is unknown.
type field[T any] func(row T, column string) (v any, ok bool)

func selectRows[T any](rows []T, q store.Query, get field[T]) ([]T, error) {
	out := make([]T, 0, len(rows))
next:
	for _, r := range rows {
		for _, flt := range q.Filters {
			v, ok := get(r, flt.Column)
			if !ok {
				return nil, fmt.Errorf("%w: %s", store.ErrUnsupportedColumn, flt.Column)
			}
			if fmt.Sprint(v) != flt.Value {
				continue next
			}
		}
		out = append(out, r)
	}
	if q.Order.Column == "" {
		return out, nil
	}
	if len(out) > 0 {
		if _, ok := get(out[0], q.Order.Column); !ok {
			return nil, fmt.Errorf("%w: %s", store.ErrUnsupportedColumn, q.Order.Column)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := get(out[i], q.Order.Column)
		b, _ := get(out[j], q.Order.Column)
		if q.Order.Ascending {
			return less(a, b)
		}
		return less(b, a)
	})
	return out, nil
}

func less(a, b any) bool {
	switch x := a.(type) {
	case float64:
		return x < b.(float64)
	case time.Time:
		return x.Before(b.(time.Time))
	default:
		return fmt.Sprint(a) < fmt.Sprint(b)
	}
}

func hotelField(h model.Hotel, col string) (any, bool) {
	switch col {
	case "id":
		return h.ID, true
	case "rating":
		return h.Rating, true
	case "location":
		return h.Location, true
	}
	return nil, false
}

func tourField(t model.Tour, col string) (any, bool) {
	switch col {
	case "id":
		return t.ID, true
	case "category":
		return t.Category, true
	}
	return nil, false
}

func routeField(r model.TransferRoute, col string) (any, bool) {
	switch col {
	case "id":
		return r.ID, true
	case "from_location":
		return r.FromLocation, true
	}
	return nil, false
}

func bookingField(b model.Booking, col string) (any, bool) {
	switch col {
	case "id":
		return b.ID, true
	case "customer_email":
		return b.CustomerEmail, true
	case "created_at":
		if b.CreatedAt == nil {
			return time.Time{}, true
		}
		return *b.CreatedAt, true
	}
	return nil, false
}
