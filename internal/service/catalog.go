// Package service implements the site's use cases on top of a store:
// catalog loading, booking submission, reservation lookup and contact
// inquiries.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/store"
)

// AllCategories is the pseudo-category that disables tour filtering.
const AllCategories = "All"

// Catalog orderings used by the listing pages.
var (
	HotelOrder    = store.Desc("rating")
	TourOrder     = store.Asc("category")
	TransferOrder = store.Asc("from_location")
)

// CatalogService loads offerings.
type CatalogService struct {
	store store.Catalog
}

// NewCatalogService returns a CatalogService reading from s.
func NewCatalogService(s store.Catalog) *CatalogService {
	return &CatalogService{store: s}
}

// Hotels lists hotels, best rated first.
func (s *CatalogService) Hotels(ctx context.Context) ([]model.Hotel, error) {
	out, err := s.store.Hotels(ctx, store.Query{}.OrderBy(HotelOrder))
	if err != nil {
		log.Printf("catalog: fetch hotels: %v", err)
		return nil, fmt.Errorf("fetch hotels: %w", err)
	}
	return out, nil
}

// Tours lists tours ordered by category.  A non-empty category other
// than AllCategories restricts the list to that category.
func (s *CatalogService) Tours(ctx context.Context, category string) ([]model.Tour, error) {
	q := store.Query{}.OrderBy(TourOrder)
	if c := strings.TrimSpace(category); c != "" && c != AllCategories {
		q = q.Eq("category", c)
	}
	out, err := s.store.Tours(ctx, q)
	if err != nil {
		log.Printf("catalog: fetch tours: %v", err)
		return nil, fmt.Errorf("fetch tours: %w", err)
	}
	return out, nil
}

// TourCategories returns AllCategories followed by the distinct
// categories of tours in first-seen order.
func TourCategories(tours []model.Tour) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, t := range tours {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// TransferRoutes lists transfer routes ordered by origin.
func (s *CatalogService) TransferRoutes(ctx context.Context) ([]model.TransferRoute, error) {
	out, err := s.store.TransferRoutes(ctx, store.Query{}.OrderBy(TransferOrder))
	if err != nil {
		log.Printf("catalog: fetch transfer routes: %v", err)
		return nil, fmt.Errorf("fetch transfer routes: %w", err)
	}
	return out, nil
}

// TransferGroup is the set of routes leaving one origin.
type TransferGroup struct {
	Origin string                `json:"origin"`
	Routes []model.TransferRoute `json:"routes"`
}

// GroupByOrigin groups routes by FromLocation, keeping the input order of
// both groups and routes.
func GroupByOrigin(routes []model.TransferRoute) []TransferGroup {
	out := []TransferGroup{}
	idx := map[string]int{}
	for _, r := range routes {
		i, ok := idx[r.FromLocation]
		if !ok {
			i = len(out)
			idx[r.FromLocation] = i
			out = append(out, TransferGroup{Origin: r.FromLocation})
		}
		out[i].Routes = append(out[i].Routes, r)
	}
	return out
}

// Offering fetches a single offering of the given variant.  It returns
// booking.ErrOfferingNotFound when no row matches.
func (s *CatalogService) Offering(ctx context.Context, kind model.BookingType, id string) (model.Offering, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, booking.ErrOfferingNotFound
	}
	q := store.Query{}.Eq("id", id)
	var (
		found model.Offering
		err   error
	)
	switch kind {
	case model.BookingHotel:
		var rows []model.Hotel
		if rows, err = s.store.Hotels(ctx, q); err == nil && len(rows) > 0 {
			found = rows[0]
		}
	case model.BookingTour:
		var rows []model.Tour
		if rows, err = s.store.Tours(ctx, q); err == nil && len(rows) > 0 {
			found = rows[0]
		}
	case model.BookingTransfer:
		var rows []model.TransferRoute
		if rows, err = s.store.TransferRoutes(ctx, q); err == nil && len(rows) > 0 {
			found = rows[0]
		}
	default:
		return nil, fmt.Errorf("%w: unknown booking type %q", booking.ErrOfferingNotFound, kind)
	}
	if err != nil {
		log.Printf("catalog: fetch %s %s: %v", kind, id, err)
		return nil, fmt.Errorf("fetch %s %s: %w", kind, id, err)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s %s", booking.ErrOfferingNotFound, kind, id)
	}
	return found, nil
}
