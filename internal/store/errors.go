package store

import "errors"

// ErrNotFound is returned when a lookup by identifier matches no row.
var ErrNotFound = errors.New("not found")

// ErrUnsupportedColumn is returned when a query references a column the
// backend does not allow for filtering or ordering.
var ErrUnsupportedColumn = errors.New("unsupported column")
