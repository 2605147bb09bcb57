package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/afriride/travel-booking/internal/app"
	"github.com/afriride/travel-booking/internal/config"
	"github.com/afriride/travel-booking/internal/handler"
	"github.com/afriride/travel-booking/internal/middleware"
	"github.com/afriride/travel-booking/internal/router"
)

func main() {
	cfg := config.MustLoad()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()
	svc := app.NewServices(st, app.Publisher(cfg))

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	idem := middleware.NewIdempotency(config.LoadIdempotencyConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(svc.Catalog, svc.Bookings), cache)
	router.RegisterBookings(e,
		handler.NewBookingHandler(svc.Bookings, cfg.LookupTokenSecret, cfg.LookupTokenTTL),
		handler.NewContactHandler(svc.Contact),
		limit, idem)
	router.RegisterReservations(e, handler.NewReservationHandler(svc.Reservations),
		cfg.LookupTokenSecret, cfg.LookupRequireToken, limit)

	go func() {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s, backend=%s)", addr, cfg.Env, cfg.DataBackend)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
