package reserver

import (
	"fmt"
	"os"
	"strings"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/adapters/blob"
	platformkafka "github.com/eshopweb/order-pipeline/internal/platform/kafka"
)

// Config carries environment-driven settings for the reserver process.
type Config struct {
	Brokers       []string
	Blob          blob.Config
	EscalationURL string
}

// LoadConfig reads environment variables and validates basic constraints.
// The escalation URL is intentionally not validated here: escalation fires
// unguarded and its own failure is unobserved.
func LoadConfig() (Config, error) {
	cfg := Config{
		Brokers: platformkafka.ParseBrokers(os.Getenv("KAFKA_BROKERS")),
		Blob: blob.Config{
			Endpoint:  strings.TrimSpace(os.Getenv("BLOB_ENDPOINT")),
			AccessKey: os.Getenv("BLOB_ACCESS_KEY"),
			SecretKey: os.Getenv("BLOB_SECRET_KEY"),
			UseSSL:    isTruthy(os.Getenv("BLOB_USE_SSL")),
			Bucket:    strings.TrimSpace(os.Getenv("BLOB_BUCKET")),
		},
		EscalationURL: strings.TrimSpace(os.Getenv("ESCALATION_URL")),
	}
	if len(cfg.Brokers) == 0 {
		return Config{}, fmt.Errorf("KAFKA_BROKERS is required")
	}
	if cfg.Blob.Endpoint == "" {
		return Config{}, fmt.Errorf("BLOB_ENDPOINT is required")
	}
	return cfg, nil
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
