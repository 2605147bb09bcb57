package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/booking"
	"github.com/afriride/travel-booking/internal/handler"
	"github.com/afriride/travel-booking/internal/model"
	"github.com/afriride/travel-booking/internal/router"
	"github.com/afriride/travel-booking/internal/service"
	"github.com/afriride/travel-booking/internal/store/storetest"
	"github.com/afriride/travel-booking/internal/utils"
)

const secret = "lookup-secret"

func newServer(t *testing.T, fake *storetest.Fake, requireToken bool) *echo.Echo {
	t.Helper()
	catalog := service.NewCatalogService(fake)
	bookings := service.NewBookingService(catalog, fake, nil)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalog, bookings), func(next echo.HandlerFunc) echo.HandlerFunc { return next })
	router.RegisterBookings(e,
		handler.NewBookingHandler(bookings, secret, time.Hour),
		handler.NewContactHandler(service.NewContactService(fake, nil)))
	router.RegisterReservations(e, handler.NewReservationHandler(service.NewReservationService(fake)), secret, requireToken)
	return e
}

func seeded() *storetest.Fake {
	return &storetest.Fake{
		HotelRows: []model.Hotel{
			{ID: "h1", Name: "Rruga Inn", PricePerNight: 100, Rating: 4.1, AvailableRooms: 5},
			{ID: "h2", Name: "Grand Tirana", PricePerNight: 180, Rating: 4.8, AvailableRooms: 20},
		},
		TourRows: []model.Tour{
			{ID: "t1", Title: "Berat Day Trip", Price: 50, MaxParticipants: 12, Category: "Cultural"},
			{ID: "t2", Title: "Theth Hike", Price: 80, MaxParticipants: 8, Category: "Adventure"},
		},
		RouteRows: []model.TransferRoute{
			{ID: "r1", FromLocation: "Tirana Airport", ToLocation: "Durres", Price: 30, Seats: 4},
		},
	}
}

func do(e *echo.Echo, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := do(newServer(t, seeded(), false), http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListHotelsOrdered(t *testing.T) {
	rec := do(newServer(t, seeded(), false), http.MethodGet, "/v1/hotels", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out struct{ Items []model.Hotel }
	decode(t, rec, &out)
	if len(out.Items) != 2 || out.Items[0].ID != "h2" {
		t.Fatalf("unexpected order: %+v", out.Items)
	}
}

func TestListToursWithCategory(t *testing.T) {
	rec := do(newServer(t, seeded(), false), http.MethodGet, "/v1/tours?category=Adventure", "", nil)
	var out struct {
		Items      []model.Tour
		Categories []string
	}
	decode(t, rec, &out)
	if len(out.Items) != 1 || out.Items[0].ID != "t2" {
		t.Fatalf("filter not applied: %+v", out.Items)
	}
	if len(out.Categories) != 3 || out.Categories[0] != "All" {
		t.Fatalf("categories = %v", out.Categories)
	}
}

func TestCatalogFailure(t *testing.T) {
	fake := seeded()
	fake.CatalogErr = errors.New("connection reset")
	rec := do(newServer(t, fake, false), http.MethodGet, "/v1/transfers", "", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetOfferingNotFound(t *testing.T) {
	rec := do(newServer(t, seeded(), false), http.MethodGet, "/v1/tours/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHotelQuote(t *testing.T) {
	rec := do(newServer(t, seeded(), false), http.MethodGet, "/v1/hotels/h1/quote?check_in=2024-06-01&check_out=2024-06-04&guests=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out struct {
		Quote struct {
			Nights  int     `json:"nights"`
			Total   float64 `json:"total"`
			Display string  `json:"display"`
		} `json:"quote"`
	}
	decode(t, rec, &out)
	if out.Quote.Nights != 3 || out.Quote.Total != 300 || out.Quote.Display != "€300.00" {
		t.Fatalf("unexpected quote: %+v", out.Quote)
	}
}

func TestTourQuoteBadPeople(t *testing.T) {
	rec := do(newServer(t, seeded(), false), http.MethodGet, "/v1/tours/t1/quote?people=zero", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateTourBooking(t *testing.T) {
	fake := seeded()
	body := `{"service_id":"t1","customer_name":"Ana","customer_email":"Ana@Example.com","customer_phone":"+355","booking_date":"2024-07-10","number_of_people":4,"total_price":1}`
	rec := do(newServer(t, fake, false), http.MethodPost, "/v1/bookings/tour", body, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out struct {
		Booking     model.Booking     `json:"booking"`
		Seconds     int               `json:"confirmation_seconds"`
		LookupToken utils.LookupToken `json:"lookup_token"`
	}
	decode(t, rec, &out)
	if out.Booking.TotalPrice != 200 {
		t.Fatalf("total = %v, want server-side 200", out.Booking.TotalPrice)
	}
	if out.Seconds != 3 || fake.CreateCalls != 1 {
		t.Fatalf("seconds=%d calls=%d", out.Seconds, fake.CreateCalls)
	}
	email, err := utils.ParseLookupToken(secret, out.LookupToken.Token)
	if err != nil || email != "ana@example.com" {
		t.Fatalf("lookup token email=%q err=%v", email, err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	fake := seeded()
	body := `{"service_id":"h1","customer_name":"Ana","customer_email":"ana@example.com","customer_phone":"+355","check_in_date":"2024-06-04","check_out_date":"2024-06-01","number_of_people":2}`
	rec := do(newServer(t, fake, false), http.MethodPost, "/v1/bookings/hotel", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out struct{ Fields map[string]string }
	decode(t, rec, &out)
	if _, ok := out.Fields["check_out_date"]; !ok {
		t.Fatalf("fields = %v", out.Fields)
	}
	if fake.CreateCalls != 0 {
		t.Fatal("invalid booking must not be inserted")
	}
}

func TestCreateBookingFailure(t *testing.T) {
	fake := seeded()
	fake.CreateErr = errors.New("network down")
	body := `{"service_id":"r1","customer_name":"Ana","customer_email":"ana@example.com","customer_phone":"+355","booking_date":"2024-07-10","number_of_people":2}`
	rec := do(newServer(t, fake, false), http.MethodPost, "/v1/bookings/transfer", body, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var out struct{ Error string }
	decode(t, rec, &out)
	if out.Error != booking.MsgBookingFailed || fake.CreateCalls != 1 {
		t.Fatalf("error=%q calls=%d", out.Error, fake.CreateCalls)
	}
}

func TestReservations(t *testing.T) {
	fake := seeded()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fake.BookingRows = []model.Booking{{ID: "b1", BookingType: model.BookingHotel, CustomerEmail: "ana@example.com", CreatedAt: &created}}
	e := newServer(t, fake, false)

	rec := do(e, http.MethodGet, "/v1/reservations?email=ANA@example.com", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Items []service.Reservation
		Count int
	}
	decode(t, rec, &out)
	if out.Count != 1 || out.Items[0].Status != model.StatusPending || out.Items[0].TypeInfo.Icon != "hotel" {
		t.Fatalf("unexpected items: %+v", out)
	}

	rec = do(e, http.MethodGet, "/v1/reservations?email=nobody@example.com", "", nil)
	var empty struct {
		Items []service.Reservation
		Empty bool
	}
	decode(t, rec, &empty)
	if rec.Code != http.StatusOK || !empty.Empty || empty.Items == nil {
		t.Fatalf("empty lookup: status=%d body=%s", rec.Code, rec.Body)
	}

	if rec := do(e, http.MethodGet, "/v1/reservations", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing email status = %d", rec.Code)
	}
}

func TestReservationsRequireToken(t *testing.T) {
	e := newServer(t, seeded(), true)
	if rec := do(e, http.MethodGet, "/v1/reservations?email=ana@example.com", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	tok, _ := utils.NewLookupToken(secret, "ana@example.com", time.Hour)
	auth := map[string]string{"Authorization": "Bearer " + tok.Token}
	if rec := do(e, http.MethodGet, "/v1/reservations", "", auth); rec.Code != http.StatusOK {
		t.Fatalf("token-only status = %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/v1/reservations?email=eve@example.com", "", auth); rec.Code != http.StatusForbidden {
		t.Fatalf("mismatched email status = %d", rec.Code)
	}
}

func TestContact(t *testing.T) {
	fake := seeded()
	e := newServer(t, fake, false)

	body := `{"name":"Ana","email":"ana@example.com","subject":"Tour Packages","message":"Group discounts?"}`
	rec := do(e, http.MethodPost, "/v1/contact", body, nil)
	if rec.Code != http.StatusCreated || fake.InquiryCalls != 1 {
		t.Fatalf("status=%d calls=%d body=%s", rec.Code, fake.InquiryCalls, rec.Body)
	}

	fake.InquiryErr = errors.New("down")
	rec = do(e, http.MethodPost, "/v1/contact", body, nil)
	var out struct{ Error string }
	decode(t, rec, &out)
	if rec.Code != http.StatusBadGateway || out.Error != booking.MsgInquiryFailed {
		t.Fatalf("status=%d error=%q", rec.Code, out.Error)
	}

	rec = do(e, http.MethodGet, "/v1/contact/subjects", "", nil)
	var subjects struct{ Items []string }
	decode(t, rec, &subjects)
	if len(subjects.Items) != len(model.ContactSubjects) {
		t.Fatalf("subjects = %v", subjects.Items)
	}
}
