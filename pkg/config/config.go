// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Addr          string        `envconfig:"ADDR" default:":8080"`
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	CartKey       string        `envconfig:"CART_KEY" default:"storefront_cart"`
	NotifyTTL     time.Duration `envconfig:"NOTIFY_TTL" default:"3s"`
	CheckoutDelay time.Duration `envconfig:"CHECKOUT_DELAY" default:"1500ms"`
	OTELEndpoint  string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads configuration, consulting a .env file when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
