package repository

import (
	"fmt"
	"strings"

	"github.com/afriride/travel-booking/internal/store"
)

// columns is the allow list of filterable/orderable columns for a table.
type columns map[string]bool

func newColumns(names ...string) columns {
	c := make(columns, len(names))
	for _, n := range names {
		c[n] = true
	}
	return c
}

// clauses renders the WHERE and ORDER BY parts of q.  The returned SQL
// starts with a space when non-empty.
func (c columns) clauses(q store.Query) (string, []any, error) {
	var sb strings.Builder
	args := make([]any, 0, len(q.Filters))
	for i, f := range q.Filters {
		if !c[f.Column] {
			return "", nil, fmt.Errorf("%w: %q", store.ErrUnsupportedColumn, f.Column)
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(f.Column)
		sb.WriteString(" = ?")
		args = append(args, f.Value)
	}
	if q.Order.Column != "" {
		if !c[q.Order.Column] {
			return "", nil, fmt.Errorf("%w: %q", store.ErrUnsupportedColumn, q.Order.Column)
		}
		dir := "DESC"
		if q.Order.Ascending {
			dir = "ASC"
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.Order.Column)
		sb.WriteString(" ")
		sb.WriteString(dir)
	}
	return sb.String(), args, nil
}
