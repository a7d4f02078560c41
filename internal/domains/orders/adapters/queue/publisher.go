// Package queue publishes reservation requests to the warehouse topic.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
)

var (
	// ErrTransport marks a broker-level delivery failure.
	ErrTransport = errors.New("reservation transport failure")
	// ErrMessageTooLarge marks a payload the broker would reject for size.
	// It is fatal for the affected order; shrinking happens upstream or not
	// at all.
	ErrMessageTooLarge = errors.New("reservation message exceeds broker limit")
)

// DefaultMaxMessageBytes mirrors the broker default for message.max.bytes.
const DefaultMaxMessageBytes = 1048576

// Config drives the publisher. A disabled publisher accepts and drops
// everything.
type Config struct {
	Enabled         bool
	Brokers         []string
	Topic           string
	MaxMessageBytes int
}

// messageWriter is the slice of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var _ ports.ReservationPublisher = (*Publisher)(nil)

// Publisher emits one message per reservation request, keyed by item so
// requests for the same item land on the same partition.
type Publisher struct {
	cfg    Config
	writer messageWriter
}

// NewPublisher connects a publisher to the configured brokers. Disabled
// configs produce a publisher with no writer at all.
func NewPublisher(cfg Config) *Publisher {
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = DefaultMaxMessageBytes
	}
	p := &Publisher{cfg: cfg}
	if cfg.Enabled {
		p.writer = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.LeastBytes{},
		}
	}
	return p
}

// Publish sends the batch. Oversized payloads are detected before any
// network I/O so the error is deterministic regardless of broker config.
func (p *Publisher) Publish(ctx context.Context, requests []types.ReservationRequest) error {
	if p == nil || !p.cfg.Enabled || len(requests) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(requests))
	for _, r := range requests {
		body, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode reservation for item %s: %w", r.ItemID, err)
		}
		if len(body) > p.cfg.MaxMessageBytes {
			return fmt.Errorf("%w: item %s payload is %d bytes", ErrMessageTooLarge, r.ItemID, len(body))
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(r.ItemID),
			Value: body,
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		var tooLarge kafka.MessageTooLargeError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: broker rejected item %s", ErrMessageTooLarge, string(tooLarge.Message.Key))
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

// Close releases the underlying writer, if any.
func (p *Publisher) Close() error {
	if w, ok := p.writer.(*kafka.Writer); ok {
		return w.Close()
	}
	return nil
}
