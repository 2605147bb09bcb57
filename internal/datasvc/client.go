// Package datasvc talks to the hosted data service over its PostgREST
// interface.  Only the two operations the site needs are used: select
// (with equality filters and one ordering column) and insert.
package datasvc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	postgrest "github.com/supabase-community/postgrest-go"

	"github.com/afriride/travel-booking/internal/store"
)

const (
	restPath = "/rest/v1"
	schema   = "public"
)

var (
	identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	// postgrest-go reports error bodies as "(code) message".
	apiErrRe = regexp.MustCompile(`\(([^)]*)\)\s*(.*)`)
)

// APIError is an error body returned by the service.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("data service: %s: %s", e.Code, e.Message)
	}
	return "data service: " + e.Message
}

// Client is safe for concurrent use.
type Client struct {
	rest    *postgrest.Client
	timeout time.Duration
}

// New validates the endpoint and returns a client.  The anon key is sent
// both as the apikey header and as a bearer token.
func New(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	if endpoint == "" || apiKey == "" {
		return nil, errors.New("datasvc: endpoint and api key are required")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("datasvc: invalid endpoint %q", endpoint)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rest := postgrest.NewClient(strings.TrimRight(endpoint, "/")+restPath, schema, map[string]string{
		"apikey": apiKey,
	}).SetAuthToken(apiKey)
	if rest.ClientError != nil {
		return nil, fmt.Errorf("datasvc: %w", rest.ClientError)
	}
	return &Client{rest: rest, timeout: timeout}, nil
}

// Select reads rows of table matching q into dest, which must be a
// pointer to a slice.
func (c *Client) Select(ctx context.Context, table string, q store.Query, dest any) error {
	if err := checkQuery(table, q); err != nil {
		return err
	}
	f := c.rest.From(table).Select("*", "", false)
	for _, flt := range q.Filters {
		f = f.Eq(flt.Column, flt.Value)
	}
	if q.Order.Column != "" {
		f = f.Order(q.Order.Column, &postgrest.OrderOpts{Ascending: q.Order.Ascending})
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if _, err := f.ExecuteToWithContext(ctx, dest); err != nil {
		return wrapErr("select", table, err)
	}
	return nil
}

// Insert stores rec as a one-element array and decodes the stored
// representation into dest (pointer to a slice).
func (c *Client) Insert(ctx context.Context, table string, rec any, dest any) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("datasvc: invalid table %q", table)
	}
	f := c.rest.From(table).Insert([]any{rec}, false, "", "representation", "")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if _, err := f.ExecuteToWithContext(ctx, dest); err != nil {
		return wrapErr("insert into", table, err)
	}
	return nil
}

func checkQuery(table string, q store.Query) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("datasvc: invalid table %q", table)
	}
	for _, f := range q.Filters {
		if !identRe.MatchString(f.Column) {
			return fmt.Errorf("%w: %q", store.ErrUnsupportedColumn, f.Column)
		}
	}
	if q.Order.Column != "" && !identRe.MatchString(q.Order.Column) {
		return fmt.Errorf("%w: %q", store.ErrUnsupportedColumn, q.Order.Column)
	}
	return nil
}

// wrapErr turns error bodies into *APIError and keeps transport and
// context errors wrapped.
func wrapErr(op, table string, err error) error {
	var uerr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.As(err, &uerr) {
		return fmt.Errorf("datasvc: %s %s: %w", op, table, err)
	}
	if m := apiErrRe.FindStringSubmatch(err.Error()); m != nil {
		return &APIError{Code: m[1], Message: m[2]}
	}
	return fmt.Errorf("datasvc: %s %s: %w", op, table, err)
}
