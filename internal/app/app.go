// Package app assembles the store and services shared by the server and
// bot binaries.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/afriride/travel-booking/internal/config"
	"github.com/afriride/travel-booking/internal/database"
	"github.com/afriride/travel-booking/internal/datasvc"
	"github.com/afriride/travel-booking/internal/metrics"
	"github.com/afriride/travel-booking/internal/queue"
	"github.com/afriride/travel-booking/internal/repository"
	"github.com/afriride/travel-booking/internal/service"
	"github.com/afriride/travel-booking/internal/store"
)

// Services bundles the use cases built on one store.
type Services struct {
	Catalog      *service.CatalogService
	Bookings     *service.BookingService
	Reservations *service.ReservationService
	Contact      *service.ContactService
}

// OpenStore connects the backend selected by cfg.DataBackend and wraps it
// with latency metrics.  The returned func releases the connection.
func OpenStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch cfg.DataBackend {
	case config.BackendMySQL:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		if cfg.DBMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		log.Printf("store: mysql %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
		return metrics.Instrument(repository.NewStore(db)), func() { _ = db.Close() }, nil
	default:
		c, err := datasvc.New(cfg.DataServiceURL, cfg.DataServiceKey, cfg.DataServiceTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("data service client: %w", err)
		}
		log.Printf("store: data service %s", cfg.DataServiceURL)
		return metrics.Instrument(datasvc.NewStore(c)), func() {}, nil
	}
}

// Publisher returns the RabbitMQ publisher, or a no-op one when
// RABBITMQ_URL is unset.
func Publisher(cfg config.Config) service.EventPublisher {
	if cfg.RabbitURL == "" {
		log.Printf("events: RABBITMQ_URL not set, booking events disabled")
		return service.NopPublisher
	}
	return queue.NewPublisher(cfg.RabbitURL)
}

// NewServices wires the services over s.
func NewServices(s store.Store, events service.EventPublisher) Services {
	catalog := service.NewCatalogService(s)
	return Services{
		Catalog:      catalog,
		Bookings:     service.NewBookingService(catalog, s, events),
		Reservations: service.NewReservationService(s),
		Contact:      service.NewContactService(s, events),
	}
}
