// Package kafka builds the readers and writers shared by the pipeline
// processes.
package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReservationTopic carries one message per order line item to reserve.
const ReservationTopic = "orderitemsreserver"

// ReservationConsumerGroup is shared by all reserver instances so the
// topic is partitioned across them.
const ReservationConsumerGroup = "order-pipeline-reserver"

// NewReservationReader builds the consumer-group reader for the
// reservation topic.
func NewReservationReader(brokers []string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          ReservationTopic,
		GroupID:        ReservationConsumerGroup,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}

// ParseBrokers splits a comma-separated broker list from configuration.
func ParseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
