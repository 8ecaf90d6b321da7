package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	FirebaseProject            string `envconfig:"FIREBASE_PROJECT_ID" required:"true"`
	FirebaseApiKey             string `envconfig:"FIREBASE_API_KEY"`
	FirebaseServiceAccountJSON string `envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	FirebaseServiceAccountPath string `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	StorageBucket              string `envconfig:"STORAGE_BUCKET"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	StoreCallTimeout time.Duration `envconfig:"STORE_CALL_TIMEOUT" default:"5s"`
	StoreMaxRetries  uint          `envconfig:"STORE_MAX_RETRIES" default:"3"`
	CheckoutLockTTL  time.Duration `envconfig:"CHECKOUT_LOCK_TTL" default:"30s"`

	// Sustained actions per minute per user for feed writes, and per IP for auth routes.
	FeedWritesPerMinute int `envconfig:"FEED_WRITES_PER_MINUTE" default:"20"`
	AuthPerMinute       int `envconfig:"AUTH_PER_MINUTE" default:"10"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
