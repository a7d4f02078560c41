// Package notify pushes JSON payloads to downstream HTTP sinks.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/ports"
)

// ErrTransport marks a connection-level delivery failure (DNS, refused,
// timeout). An HTTP response of any status is not a transport failure.
var ErrTransport = errors.New("notification transport failure")

// Config is the per-destination switch. A disabled destination needs no
// valid URL; the sender never touches it.
type Config struct {
	Enabled bool
	URL     string
}

var _ ports.Notifier = (*Sender)(nil)

// Sender delivers one payload per call to a single configured endpoint.
// Delivery is attempt-once and the response status code is not inspected:
// any response counts as delivered. The receiving sinks carry their own
// durability; this side only guarantees the request left the process.
type Sender struct {
	cfg    Config
	client *http.Client
}

// NewSender builds a sender for one destination. A nil client falls back
// to a default client, leaving timeouts to the transport's defaults.
func NewSender(cfg Config, client *http.Client) *Sender {
	if client == nil {
		client = &http.Client{}
	}
	return &Sender{cfg: cfg, client: client}
}

// Send serializes the payload and POSTs it to the destination.
func (s *Sender) Send(ctx context.Context, payload any) error {
	if s == nil || !s.cfg.Enabled {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	return nil
}
