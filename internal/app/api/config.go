package api

import (
	"fmt"
	"os"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/notify"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/queue"
	platformkafka "github.com/eshopweb/order-pipeline/internal/platform/kafka"
)

// Config carries environment-driven settings for the API process. Each
// fan-out destination is an independent flag/target pair: a disabled
// destination needs no valid target and is never validated.
type Config struct {
	Port              string
	PostgresDSN       string
	OrderDetails      notify.Config
	DeliveryDetails   notify.Config
	Reservations      queue.Config
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		OrderDetails: notify.Config{
			Enabled: isTruthy(os.Getenv("ORDER_DETAILS_ENABLED")),
			URL:     strings.TrimSpace(os.Getenv("ORDER_DETAILS_URL")),
		},
		DeliveryDetails: notify.Config{
			Enabled: isTruthy(os.Getenv("DELIVERY_DETAILS_ENABLED")),
			URL:     strings.TrimSpace(os.Getenv("DELIVERY_DETAILS_URL")),
		},
		Reservations: queue.Config{
			Enabled: isTruthy(os.Getenv("RESERVATIONS_ENABLED")),
			Brokers: platformkafka.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
			Topic:   envDefault("RESERVATION_TOPIC", platformkafka.ReservationTopic),
		},
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	if cfg.OrderDetails.Enabled && cfg.OrderDetails.URL == "" {
		return Config{}, fmt.Errorf("ORDER_DETAILS_URL is required when ORDER_DETAILS_ENABLED is set")
	}
	if cfg.DeliveryDetails.Enabled && cfg.DeliveryDetails.URL == "" {
		return Config{}, fmt.Errorf("DELIVERY_DETAILS_URL is required when DELIVERY_DETAILS_ENABLED is set")
	}
	if cfg.Reservations.Enabled && len(cfg.Reservations.Brokers) == 0 {
		return Config{}, fmt.Errorf("KAFKA_BROKERS is required when RESERVATIONS_ENABLED is set")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
