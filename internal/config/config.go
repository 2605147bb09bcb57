// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Data backends selectable through DATA_BACKEND.
const (
	BackendDataService = "dataservice"
	BackendMySQL       = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"dev"`
	Port string `envconfig:"APP_PORT" default:"8080"`

	// DataBackend chooses where catalog, bookings and inquiries live.
	DataBackend string `envconfig:"DATA_BACKEND" default:"dataservice"`

	// Hosted data service (PostgREST).
	DataServiceURL     string        `envconfig:"SUPABASE_URL"`
	DataServiceKey     string        `envconfig:"SUPABASE_ANON_KEY"`
	DataServiceTimeout time.Duration `envconfig:"SUPABASE_TIMEOUT" default:"10s"`

	// MySQL backend.
	DBUser    string `envconfig:"DB_USER"`
	DBPass    string `envconfig:"DB_PASS"`
	DBHost    string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort    string `envconfig:"DB_PORT" default:"3306"`
	DBName    string `envconfig:"DB_NAME"`
	DBMigrate bool   `envconfig:"DB_MIGRATE" default:"true"`

	// RabbitURL enables booking/contact events when set.
	RabbitURL string `envconfig:"RABBITMQ_URL"`

	// Reservation lookup tokens.
	LookupTokenSecret  string        `envconfig:"LOOKUP_TOKEN_SECRET"`
	LookupTokenTTL     time.Duration `envconfig:"LOOKUP_TOKEN_TTL" default:"30m"`
	LookupRequireToken bool          `envconfig:"LOOKUP_REQUIRE_TOKEN" default:"false"`

	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN"`

	// BookingLog is where the worker appends event lines.
	BookingLog string `envconfig:"BOOKING_LOG" default:"logs/booking.log"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	c.DataBackend = strings.ToLower(strings.TrimSpace(c.DataBackend))
	return c, c.Validate()
}

// MustLoad is Load that exits on error.
func MustLoad() Config {
	c, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

// Validate checks that the selected backend and features are fully
// configured.
func (c Config) Validate() error {
	switch c.DataBackend {
	case BackendDataService:
		if c.DataServiceURL == "" || c.DataServiceKey == "" {
			return fmt.Errorf("DATA_BACKEND=%s requires SUPABASE_URL and SUPABASE_ANON_KEY", c.DataBackend)
		}
	case BackendMySQL:
		if c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("DATA_BACKEND=%s requires DB_USER and DB_NAME", c.DataBackend)
		}
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q", c.DataBackend)
	}
	if c.LookupRequireToken && c.LookupTokenSecret == "" {
		return fmt.Errorf("LOOKUP_REQUIRE_TOKEN needs LOOKUP_TOKEN_SECRET")
	}
	return nil
}
