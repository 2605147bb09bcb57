package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/afriride/travel-booking/internal/config"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCacheKeysPerIDAndQuery(t *testing.T) {
	_, rdb := newRedis(t)
	cache := NewRedisCache(config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{http.MethodGet: true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}, rdb)

	var calls int32
	e := echo.New()
	e.GET("/v1/hotels/:id", func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.String(http.StatusOK, "hotel "+c.Param("id"))
	}, cache)
	e.GET("/v1/tours", func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.String(http.StatusOK, "tours "+c.QueryParam("category"))
	}, cache)

	steps := []struct {
		target, body, xcache string
	}{
		{"/v1/hotels/h1", "hotel h1", "MISS"},
		{"/v1/hotels/h2", "hotel h2", "MISS"},
		{"/v1/hotels/h1", "hotel h1", "HIT"},
		{"/v1/hotels/h2", "hotel h2", "HIT"},
		{"/v1/tours?category=Adventure", "tours Adventure", "MISS"},
		{"/v1/tours?category=Culture", "tours Culture", "MISS"},
		{"/v1/tours?category=Adventure", "tours Adventure", "HIT"},
	}
	for _, st := range steps {
		rec := serve(e, http.MethodGet, st.target, "")
		if rec.Code != http.StatusOK || rec.Body.String() != st.body {
			t.Fatalf("GET %s = %d %q, want %q", st.target, rec.Code, rec.Body.String(), st.body)
		}
		if got := rec.Header().Get("X-Cache"); got != st.xcache {
			t.Fatalf("GET %s X-Cache = %q, want %q", st.target, got, st.xcache)
		}
	}
	if calls != 4 {
		t.Fatalf("handler ran %d times, want 4", calls)
	}
}

func TestRedisCacheSkipsErrors(t *testing.T) {
	_, rdb := newRedis(t)
	cache := NewRedisCache(config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{http.MethodGet: true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}, rdb)

	var calls int32
	e := echo.New()
	e.GET("/v1/hotels", func(c echo.Context) error {
		atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "down"})
	}, cache)

	serve(e, http.MethodGet, "/v1/hotels", "")
	rec := serve(e, http.MethodGet, "/v1/hotels", "")
	if rec.Code != http.StatusBadGateway || rec.Header().Get("X-Cache") != "MISS" || calls != 2 {
		t.Fatalf("failed response was cached: code=%d x-cache=%q calls=%d", rec.Code, rec.Header().Get("X-Cache"), calls)
	}
}

func idemConfig() config.IdempotencyConfig {
	return config.IdempotencyConfig{Enabled: true, TTL: time.Minute, Prefix: "idem"}
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	_, rdb := newRedis(t)
	var calls int32
	e := echo.New()
	e.POST("/v1/bookings/tour", func(c echo.Context) error {
		n := atomic.AddInt32(&calls, 1)
		return c.JSON(http.StatusCreated, echo.Map{"call": n})
	}, NewIdempotency(idemConfig(), rdb))

	body := `{"service_id":"t1"}`
	first := serve(e, http.MethodPost, "/v1/bookings/tour", body)
	second := serve(e, http.MethodPost, "/v1/bookings/tour", body)

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("codes = %d, %d", first.Code, second.Code)
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("second response should be a replay")
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body %q differs from %q", second.Body.String(), first.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}

	other := serve(e, http.MethodPost, "/v1/bookings/tour", `{"service_id":"t2"}`)
	if other.Header().Get("X-Idempotency-Replay") != "" || calls != 2 {
		t.Fatalf("different body must not replay: calls=%d", calls)
	}
}

func TestIdempotencyRejectsRepeatWhileRunning(t *testing.T) {
	_, rdb := newRedis(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	e := echo.New()
	e.POST("/v1/bookings/hotel", func(c echo.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-release
		}
		return c.JSON(http.StatusCreated, echo.Map{"ok": true})
	}, NewIdempotency(idemConfig(), rdb))

	body := `{"service_id":"h1"}`
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- serve(e, http.MethodPost, "/v1/bookings/hotel", body) }()
	<-entered

	rec := serve(e, http.MethodPost, "/v1/bookings/hotel", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("repeat while running = %d, want 409", rec.Code)
	}
	close(release)
	if first := <-done; first.Code != http.StatusCreated {
		t.Fatalf("first = %d", first.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestIdempotencyReleasesKeyOnFailure(t *testing.T) {
	cases := []struct {
		name string
		fail func(c echo.Context) error
	}{
		{"error status", func(c echo.Context) error {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed"})
		}},
		{"validation status", func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid"})
		}},
		{"returned error", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusInternalServerError, "boom")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mr, rdb := newRedis(t)
			var calls int32
			e := echo.New()
			e.POST("/v1/contact", func(c echo.Context) error {
				if atomic.AddInt32(&calls, 1) == 1 {
					return tc.fail(c)
				}
				return c.JSON(http.StatusCreated, echo.Map{"ok": true})
			}, NewIdempotency(idemConfig(), rdb))

			body := `{"name":"Ana"}`
			serve(e, http.MethodPost, "/v1/contact", body)
			if keys := mr.Keys(); len(keys) != 0 {
				t.Fatalf("key kept after failure: %v", keys)
			}
			rec := serve(e, http.MethodPost, "/v1/contact", body)
			if rec.Code != http.StatusCreated || calls != 2 {
				t.Fatalf("retry = %d after %d calls", rec.Code, calls)
			}
		})
	}
}

func TestTokenBucketLimitsPerRoute(t *testing.T) {
	_, rdb := newRedis(t)
	limit := NewTokenBucket(config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            2 * time.Hour,
		Prefix:         "rl",
	}, rdb)

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.GET("/v1/hotels", ok, limit)
	e.GET("/v1/tours", ok, limit)

	for i, want := range []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests} {
		rec := serve(e, http.MethodGet, "/v1/hotels", "")
		if rec.Code != want {
			t.Fatalf("request %d = %d, want %d", i+1, rec.Code, want)
		}
		if want == http.StatusTooManyRequests && rec.Header().Get("Retry-After") == "" {
			t.Fatal("missing Retry-After")
		}
	}
	if rec := serve(e, http.MethodGet, "/v1/tours", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("other route shares the bucket: %d", rec.Code)
	}
}
