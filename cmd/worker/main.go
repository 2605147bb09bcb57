package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/afriride/travel-booking/internal/config"
	"github.com/afriride/travel-booking/internal/queue"
)

// The worker only needs the broker and the log path, so it reads them
// without the full backend validation of config.Load.
func main() {
	cfg, err := config.Load()
	if err != nil && cfg.RabbitURL == "" {
		log.Fatalf("config: %v", err)
	}
	if cfg.RabbitURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.BookingLog), 0o755); err != nil {
		log.Fatalf("create log dir: %v", err)
	}
	f, err := os.OpenFile(cfg.BookingLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("open booking log: %v", err)
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("worker: consuming %s and %s into %s", queue.BookingCreatedQueue, queue.ContactReceivedQueue, cfg.BookingLog)
	if err := queue.NewConsumer(cfg.RabbitURL, f).Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("worker: %v", err)
	}
}
