// Package application implements the reservation message processor.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/domain"
	"github.com/eshopweb/order-pipeline/internal/domains/reservations/ports"
)

// RetryPolicy bounds the storage write attempts for one message. The
// attempt count is a contract with the warehouse; the delay between
// attempts defaults to zero but is adjustable per deployment.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy retries the write immediately, three attempts total.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3}

// Processor drives one reservation message through parse, durable write,
// and, on unrecoverable failure, escalation.
type Processor struct {
	store     ports.RecordStore
	escalator ports.Escalator
	retry     RetryPolicy
	logger    *slog.Logger
}

type ProcessorOption func(*Processor)

func WithRetryPolicy(policy RetryPolicy) ProcessorOption {
	return func(p *Processor) {
		if policy.Attempts > 0 {
			p.retry = policy
		}
	}
}

func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor wires the processor. A nil escalator disables escalation.
func NewProcessor(store ports.RecordStore, escalator ports.Escalator, opts ...ProcessorOption) *Processor {
	p := &Processor{
		store:     store,
		escalator: escalator,
		retry:     DefaultRetryPolicy,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Process handles one queue message end to end. Malformed payloads are
// terminal without a single write attempt; write failures consume the full
// retry budget before escalating. The returned error is always the
// original failure, never the escalation outcome: the message is terminal
// for this component either way, and redelivery is the transport's call.
func (p *Processor) Process(ctx context.Context, payload []byte) error {
	record, err := domain.ParseRecord(payload)
	if err != nil {
		p.logger.Error("reservation payload rejected", slog.String("error", err.Error()))
		p.escalate(ctx, err)
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= p.retry.Attempts; attempt++ {
		if err := p.store.Put(ctx, record); err != nil {
			lastErr = err
			p.logger.Warn("reservation write failed",
				slog.String("itemId", record.ItemID),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			if attempt < p.retry.Attempts && p.retry.Delay > 0 {
				select {
				case <-time.After(p.retry.Delay):
				case <-ctx.Done():
					lastErr = ctx.Err()
					attempt = p.retry.Attempts
				}
			}
			continue
		}
		p.logger.Info("reservation recorded",
			slog.String("itemId", record.ItemID),
			slog.Int("attempt", attempt))
		return nil
	}

	p.escalate(ctx, lastErr)
	return lastErr
}

// escalate posts the diagnostic payload once. Its own failure is logged
// and otherwise unobserved.
func (p *Processor) escalate(ctx context.Context, cause error) {
	if p.escalator == nil {
		return
	}
	message := fmt.Sprintf("exception has thrown while sending order to warehouse: '%s' \n StackTrace \n %s",
		cause, debug.Stack())
	if err := p.escalator.Escalate(ctx, message); err != nil {
		p.logger.Error("escalation failed", slog.String("error", err.Error()))
	}
}
