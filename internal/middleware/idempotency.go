package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/afriride/travel-booking/internal/config"
)

// IdempotencyKeyHeader lets clients name a submission explicitly.
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	idemProcessing = "PROCESSING"
	lockTTL        = 30 * time.Second
	maxStoredBody  = 64 << 10
)

// NewIdempotency guards POST endpoints against duplicate submissions.
// The key is the Idempotency-Key header or, when absent, a hash of
// method, route and body, so a double click on the same form maps to one
// insert.  While a request runs, repeats get 409.  A successful response
// is stored and replayed for repeats; a failed one releases the key so
// the customer can retry with the same data.
func NewIdempotency(cfg config.IdempotencyConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodPost {
				return next(c)
			}
			key, err := idempotencyKey(cfg.Prefix, c)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
			}
			ctx := req.Context()

			acquired, err := rdb.SetNX(ctx, key, idemProcessing, lockTTL).Result()
			if err != nil {
				log.Printf("idempotency: %s: %v", key, err)
				return next(c)
			}
			if !acquired {
				val, err := rdb.Get(ctx, key).Bytes()
				if err == nil && string(val) != idemProcessing {
					if status, hdr, body, ok := decodePayload(val); ok {
						c.Response().Header().Set("X-Idempotency-Replay", "true")
						replay(c.Response(), status, hdr, body)
						return nil
					}
				}
				return c.JSON(http.StatusConflict, echo.Map{"error": "This submission is already being processed."})
			}

			cw := newCaptureWriter(c.Response().Writer, maxStoredBody)
			c.Response().Writer = cw
			herr := next(c)

			// The request context may already be cancelled here.
			bg, cancel := contextWithTimeout()
			defer cancel()
			if herr != nil || cw.status >= 300 || cw.truncated() {
				_ = rdb.Del(bg, key).Err()
				return herr
			}
			payload, err := encodePayload(cw.status, snapshot(c.Response().Header()), cw.buf.Bytes())
			if err != nil {
				_ = rdb.Del(bg, key).Err()
				return nil
			}
			if err := rdb.Set(bg, key, payload, cfg.TTL).Err(); err != nil {
				log.Printf("idempotency: store %s: %v", key, err)
			}
			return nil
		}
	}
}

func idempotencyKey(prefix string, c echo.Context) (string, error) {
	req := c.Request()
	if k := req.Header.Get(IdempotencyKeyHeader); k != "" {
		return prefix + ":key:" + k, nil
	}
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		body = b
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	h := sha256.New()
	h.Write([]byte(req.Method + " " + req.URL.Path + "\n"))
	h.Write(body)
	return prefix + ":body:" + hex.EncodeToString(h.Sum(nil)), nil
}

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}
