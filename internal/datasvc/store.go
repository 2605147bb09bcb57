package datasvc

import (
	"context"
	"fmt"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/store"
)

// Store adapts Client to store.Store.
type Store struct {
	c *Client
}

var _ store.Store = (*Store)(nil)

// NewStore wraps c.
func NewStore(c *Client) *Store { return &Store{c: c} }

func (s *Store) Hotels(ctx context.Context, q store.Query) ([]model.Hotel, error) {
	out := []model.Hotel{}
	if err := s.c.Select(ctx, store.TableHotels, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Tours(ctx context.Context, q store.Query) ([]model.Tour, error) {
	out := []model.Tour{}
	if err := s.c.Select(ctx, store.TableTours, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) TransferRoutes(ctx context.Context, q store.Query) ([]model.TransferRoute, error) {
	out := []model.TransferRoute{}
	if err := s.c.Select(ctx, store.TableTransferRoutes, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Bookings(ctx context.Context, q store.Query) ([]model.Booking, error) {
	out := []model.Booking{}
	if err := s.c.Select(ctx, store.TableBookings, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) CreateBooking(ctx context.Context, b *model.Booking) error {
	return insertOne(ctx, s.c, store.TableBookings, b)
}

func (s *Store) CreateInquiry(ctx context.Context, in *model.ContactInquiry) error {
	return insertOne(ctx, s.c, store.TableContactInquiries, in)
}

// insertOne inserts rec and overwrites it with the stored representation
// so that backend defaults (id, status, created_at) reach the caller.
func insertOne[T any](ctx context.Context, c *Client, table string, rec *T) error {
	var out []T
	if err := c.Insert(ctx, table, rec, &out); err != nil {
		return err
	}
	if len(out) == 0 {
		return fmt.Errorf("datasvc: insert into %s returned no rows", table)
	}
	*rec = out[0]
	return nil
}
