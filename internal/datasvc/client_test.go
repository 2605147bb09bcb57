package datasvc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/store"
)

func newTestStore(t *testing.T, h http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "anon-key", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return NewStore(c)
}

func TestSelectBuildsPostgrestQuery(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/bookings" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("select") != "*" {
			t.Errorf("select = %q", q.Get("select"))
		}
		if q.Get("customer_email") != "eq.ana@example.com" {
			t.Errorf("filter = %q", q.Get("customer_email"))
		}
		if !strings.HasPrefix(q.Get("order"), "created_at.desc") {
			t.Errorf("order = %q", q.Get("order"))
		}
		if r.Header.Get("apikey") != "anon-key" || r.Header.Get("Authorization") != "Bearer anon-key" {
			t.Errorf("missing auth headers: %v", r.Header)
		}
		_, _ = io.WriteString(w, `[{"id":"b1","booking_type":"tour","customer_email":"ana@example.com","total_price":200,"created_at":"2024-06-01T10:00:00.123+00:00"}]`)
	})

	q := store.Query{}.Eq("customer_email", "ana@example.com").OrderBy(store.Desc("created_at"))
	got, err := s.Bookings(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "b1" || got[0].BookingType != model.BookingTour || got[0].CreatedAt == nil {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestSelectEmptyResultIsNotNil(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})
	got, err := s.Hotels(context.Background(), store.Query{})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty slice, got %#v", got)
	}
}

func TestInsertReturnsRepresentation(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/v1/bookings" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("Prefer = %q", r.Header.Get("Prefer"))
		}
		var rows []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 {
			t.Fatalf("want one row, got %d", len(rows))
		}
		if _, ok := rows[0]["id"]; ok {
			t.Errorf("empty id must be omitted")
		}
		rows[0]["id"] = "new-id"
		rows[0]["status"] = "pending"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(rows)
	})

	b := &model.Booking{BookingType: model.BookingHotel, CustomerEmail: "ana@example.com", TotalPrice: 300}
	if err := s.CreateBooking(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if b.ID != "new-id" || b.Status != model.StatusPending || b.TotalPrice != 300 {
		t.Fatalf("record not refreshed: %+v", b)
	}
}

func TestErrorResponse(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"23502","message":"null value in column \"customer_name\""}`)
	})
	err := s.CreateInquiry(context.Background(), &model.ContactInquiry{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if !strings.Contains(apiErr.Message, "customer_name") {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestRejectsBadColumn(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	})
	_, err := s.Tours(context.Background(), store.Query{}.OrderBy(store.Asc("category; drop")))
	if !errors.Is(err, store.ErrUnsupportedColumn) {
		t.Fatalf("want ErrUnsupportedColumn, got %v", err)
	}
}

func TestNewValidatesEndpoint(t *testing.T) {
	if _, err := New("", "k", 0); err == nil {
		t.Fatal("want error for empty endpoint")
	}
	if _, err := New("not a url", "k", 0); err == nil {
		t.Fatal("want error for invalid endpoint")
	}
}

func TestSelectTimesOut(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	c, err := New(srv.URL, "anon-key", 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewStore(c).Tours(context.Background(), store.Query{})
	if err == nil {
		t.Fatal("want timeout error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure reported as API error: %v", err)
	}
}
