package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/afriride/travel-booking/internal/config"
	"github.com/afriride/travel-booking/internal/utils"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "Content-Length": {"11"}}
	bs, err := encodePayload(http.StatusCreated, hdr, []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, got, body, ok := decodePayload(bs)
	if !ok || status != http.StatusCreated || string(body) != `{"ok":true}` || got.Get("Content-Type") != "application/json" {
		t.Fatalf("decode mismatch: ok=%v status=%d hdr=%v body=%q", ok, status, got, body)
	}

	rec := httptest.NewRecorder()
	replay(rec, status, got, body)
	if rec.Code != http.StatusCreated || rec.Header().Get("Content-Length") != "" {
		t.Fatalf("replay wrote status %d headers %v", rec.Code, rec.Header())
	}

	if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0}); ok {
		t.Fatal("expected short header to fail")
	}
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := newCaptureWriter(rec, 4)
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("def"))
	if cw.buf.String() != "abcd" || !cw.truncated() {
		t.Fatalf("captured %q truncated=%v", cw.buf.String(), cw.truncated())
	}
	if rec.Body.String() != "abcdef" {
		t.Fatalf("client got %q", rec.Body.String())
	}
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	e := echo.New()
	called := 0
	h := func(c echo.Context) error { called++; return c.NoContent(http.StatusNoContent) }
	mws := []echo.MiddlewareFunc{
		NewRedisCache(config.CacheConfig{Enabled: true}, nil),
		NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil),
		NewIdempotency(config.IdempotencyConfig{Enabled: true}, nil),
	}
	for _, mw := range mws {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		if err := mw(h)(c); err != nil {
			t.Fatalf("middleware: %v", err)
		}
	}
	if called != len(mws) {
		t.Fatalf("handler called %d times, want %d", called, len(mws))
	}
}

func TestIdempotencyKeyRestoresBody(t *testing.T) {
	e := echo.New()
	body := `{"service_id":"t1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/tour", strings.NewReader(body))
	c := e.NewContext(req, httptest.NewRecorder())

	k1, err := idempotencyKey("idem", c)
	if err != nil {
		t.Fatalf("idempotencyKey: %v", err)
	}
	again, _ := io.ReadAll(c.Request().Body)
	if string(again) != body {
		t.Fatalf("body not restored: %q", again)
	}

	c2 := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/bookings/tour", strings.NewReader(body)), httptest.NewRecorder())
	k2, _ := idempotencyKey("idem", c2)
	if k1 != k2 || !strings.HasPrefix(k1, "idem:body:") {
		t.Fatalf("keys differ for identical bodies: %s vs %s", k1, k2)
	}

	req3 := httptest.NewRequest(http.MethodPost, "/v1/bookings/tour", strings.NewReader(body))
	req3.Header.Set(IdempotencyKeyHeader, "abc")
	k3, _ := idempotencyKey("idem", e.NewContext(req3, httptest.NewRecorder()))
	if k3 != "idem:key:abc" {
		t.Fatalf("explicit key = %s", k3)
	}
}

func TestLookupAuth(t *testing.T) {
	e := echo.New()
	tok, err := utils.NewLookupToken("s3cret", "ana@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	ok := func(c echo.Context) error {
		email, _ := c.Get(LookupEmailKey).(string)
		return c.String(http.StatusOK, email)
	}

	cases := []struct {
		name     string
		required bool
		auth     string
		status   int
		body     string
	}{
		{"optional without token", false, "", http.StatusOK, ""},
		{"required without token", true, "", http.StatusUnauthorized, ""},
		{"valid token", true, "Bearer " + tok.Token, http.StatusOK, "ana@example.com"},
		{"bad token", false, "Bearer nope", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/reservations?email=ana@example.com", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rec := httptest.NewRecorder()
			if err := LookupAuth("s3cret", tc.required)(ok)(e.NewContext(req, rec)); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body = %q", rec.Body.String())
			}
		})
	}
}
