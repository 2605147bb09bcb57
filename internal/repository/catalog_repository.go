package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/store"
)

// CatalogRepo reads hotels, tours and transfer routes.  The tables are
// maintained by the agency outside this service, so there are no write
// methods.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo returns a CatalogRepo bound to db.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

var (
	hotelColumns    = newColumns("id", "name", "location", "rating", "price_per_night", "created_at")
	tourColumns     = newColumns("id", "title", "category", "location", "price", "created_at")
	transferColumns = newColumns("id", "from_location", "to_location", "vehicle_type", "price", "created_at")
)

// Hotels lists hotels matching q.
func (r *CatalogRepo) Hotels(ctx context.Context, q store.Query) ([]model.Hotel, error) {
	tail, args, err := hotelColumns.clauses(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, location, address, price_per_night,
		rating, amenities, image_url, available_rooms, created_at FROM hotels`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	out := []model.Hotel{}
	for rows.Next() {
		var h model.Hotel
		var amenities []byte
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.Location, &h.Address, &h.PricePerNight,
			&h.Rating, &amenities, &h.ImageURL, &h.AvailableRooms, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		if h.Amenities, err = decodeList(amenities); err != nil {
			return nil, fmt.Errorf("hotel %s amenities: %w", h.ID, err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Tours lists tours matching q.
func (r *CatalogRepo) Tours(ctx context.Context, q store.Query) ([]model.Tour, error) {
	tail, args, err := tourColumns.clauses(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, duration, price, category,
		location, includes, image_url, max_participants, created_at FROM tours`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query tours: %w", err)
	}
	defer rows.Close()

	out := []model.Tour{}
	for rows.Next() {
		var t model.Tour
		var includes []byte
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Duration, &t.Price, &t.Category,
			&t.Location, &includes, &t.ImageURL, &t.MaxParticipants, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tour: %w", err)
		}
		if t.Includes, err = decodeList(includes); err != nil {
			return nil, fmt.Errorf("tour %s includes: %w", t.ID, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TransferRoutes lists transfer routes matching q.
func (r *CatalogRepo) TransferRoutes(ctx context.Context, q store.Query) ([]model.TransferRoute, error) {
	tail, args, err := transferColumns.clauses(q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, from_location, to_location, distance_km, price,
		vehicle_type, capacity, duration_minutes, created_at FROM transfer_routes`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query transfer routes: %w", err)
	}
	defer rows.Close()

	out := []model.TransferRoute{}
	for rows.Next() {
		var tr model.TransferRoute
		if err := rows.Scan(&tr.ID, &tr.FromLocation, &tr.ToLocation, &tr.DistanceKm, &tr.Price,
			&tr.VehicleType, &tr.Seats, &tr.DurationMinutes, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer route: %w", err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// decodeList unmarshals a JSON array column.  NULL and empty values give
// an empty list.
func decodeList(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
