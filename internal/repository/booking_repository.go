package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/pricing"
	"github.com/afriride/travel-booking/internal/store"
)

// BookingRepo inserts and lists bookings.  Bookings are never updated
// from this service.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to db.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

var bookingColumns = newColumns("id", "customer_email", "booking_type", "service_id", "status", "created_at")

const bookingSelect = `SELECT id, booking_type, customer_name, customer_email, customer_phone, booking_date,
	service_id, number_of_people, special_requests, total_price, status, created_at FROM bookings`

// CreateBooking inserts b with a fresh UUID and reads the row back so that
// the status and created_at defaults reach the caller.
func (r *BookingRepo) CreateBooking(ctx context.Context, b *model.Booking) error {
	date, err := pricing.ParseDate(b.BookingDate)
	if err != nil {
		return fmt.Errorf("booking date: %w", err)
	}
	id := uuid.NewString()
	const q = `INSERT INTO bookings (id, booking_type, customer_name, customer_email, customer_phone,
		booking_date, service_id, number_of_people, special_requests, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, string(b.BookingType), b.CustomerName, b.CustomerEmail,
		b.CustomerPhone, date.Format(pricing.DateLayout), b.ServiceID, b.NumberOfPeople,
		nullString(b.SpecialRequests), b.TotalPrice); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	rows, err := r.Bookings(ctx, store.Query{}.Eq("id", id))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	*b = rows[0]
	return nil
}

// Bookings lists bookings matching q.
func (r *BookingRepo) Bookings(ctx context.Context, q store.Query) ([]model.Booking, error) {
	tail, args, err := bookingColumns.clauses(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, bookingSelect+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		var kind string
		var date, created time.Time
		var requests sql.NullString
		if err := rows.Scan(&b.ID, &kind, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &date,
			&b.ServiceID, &b.NumberOfPeople, &requests, &b.TotalPrice, &b.Status, &created); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.BookingType = model.BookingType(kind)
		b.BookingDate = date.Format(pricing.DateLayout)
		b.SpecialRequests = requests.String
		b.CreatedAt = &created
		out = append(out, b)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
