// Package repository implements store.Store on MySQL.  Each table gets a
// small repo bound to a *sql.DB; Store bundles them.  Filter and order
// columns are checked against a per-table allow list before they are
// interpolated into SQL.
package repository

import "github.com/afriride/travel-booking/internal/store"

// ErrNotFound aliases the store sentinel so callers of this package can
// compare against either.
var ErrNotFound = store.ErrNotFound
