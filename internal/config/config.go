package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries every knob the engine reads at boot. Values come from the
// environment, optionally seeded from a .env file found near the working
// directory.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"9000"`
	LogDebug bool   `env:"LOG_DEBUG" envDefault:"false"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	DBPassword string `env:"POSTGRES_PASSWORD"`
	DBName     string `env:"POSTGRES_DB" envDefault:"returns"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"return-events"`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"return-events-consumer-group"`
	// KafkaConsole swaps the real producer for the console one, for local
	// runs without a broker.
	KafkaConsole bool `env:"KAFKA_CONSOLE" envDefault:"false"`

	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"10"`
	OutboxMaxAttempts  int           `env:"OUTBOX_MAX_ATTEMPTS" envDefault:"3"`

	PaymentBaseURL  string `env:"PAYMENT_SERVICE_URL" envDefault:"http://localhost:9001"`
	OrdersBaseURL   string `env:"ORDERS_SERVICE_URL" envDefault:"http://localhost:9002"`
	ShippingBaseURL string `env:"SHIPPING_SERVICE_URL" envDefault:"http://localhost:9003"`

	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"30s"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads a nearby .env file when present, then parses the environment.
func Load() (*Config, error) {
	loadDotenv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// loadDotenv walks up from the working directory the way docker-compose
// layouts place the .env next to the compose file. A missing file is fine,
// the real environment wins either way.
func loadDotenv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}
	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded environment variables from %s", envPath)
			return
		}
	}
}

// DSN assembles the postgres connection string for the pgx pool.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
