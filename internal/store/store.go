// Package store declares the persistence contract the booking site relies
// on.  Two backends implement it: the hosted data service client in
// package datasvc and the MySQL repositories in package repository.
package store

import (
	"context"

	"github.com/afriride/travel-booking/internal/model"
)

// Collection names shared by every backend.
const (
	TableHotels           = "hotels"
	TableTours            = "tours"
	TableTransferRoutes   = "transfer_routes"
	TableBookings         = "bookings"
	TableContactInquiries = "contact_inquiries"
)

// Order is a single ORDER BY column.
type Order struct {
	Column    string
	Ascending bool
}

// Asc and Desc build an Order.
func Asc(col string) Order  { return Order{Column: col, Ascending: true} }
func Desc(col string) Order { return Order{Column: col} }

// Filter narrows a select to rows whose Column equals Value.
type Filter struct {
	Column string
	Value  string
}

// Query combines equality filters with an ordering.  A zero Order leaves
// the backend's natural order.
type Query struct {
	Filters []Filter
	Order   Order
}

// Eq returns a copy of q with one more equality filter.
func (q Query) Eq(col, val string) Query {
	fs := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(fs, q.Filters)
	q.Filters = append(fs, Filter{Column: col, Value: val})
	return q
}

// OrderBy returns a copy of q ordered by o.
func (q Query) OrderBy(o Order) Query {
	q.Order = o
	return q
}

// Catalog reads the offerings.  Offerings are maintained outside this
// system, so the interface is read-only.
type Catalog interface {
	Hotels(ctx context.Context, q Query) ([]model.Hotel, error)
	Tours(ctx context.Context, q Query) ([]model.Tour, error)
	TransferRoutes(ctx context.Context, q Query) ([]model.TransferRoute, error)
}

// Bookings creates and queries booking records.  CreateBooking fills in
// the server-assigned fields (ID, Status, CreatedAt) on success.
type Bookings interface {
	CreateBooking(ctx context.Context, b *model.Booking) error
	Bookings(ctx context.Context, q Query) ([]model.Booking, error)
}

// Inquiries creates contact inquiry records.
type Inquiries interface {
	CreateInquiry(ctx context.Context, in *model.ContactInquiry) error
}

// Store is the full contract.
type Store interface {
	Catalog
	Bookings
	Inquiries
}
