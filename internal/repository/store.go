package repository

import (
	"database/sql"

	"github.com/afriride/travel-booking/internal/store"
)

// Store bundles the MySQL repositories into a store.Store.
type Store struct {
	*CatalogRepo
	*BookingRepo
	*InquiryRepo
}

var _ store.Store = (*Store)(nil)

// NewStore builds every repository on the same connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		CatalogRepo: NewCatalogRepo(db),
		BookingRepo: NewBookingRepo(db),
		InquiryRepo: NewInquiryRepo(db),
	}
}
