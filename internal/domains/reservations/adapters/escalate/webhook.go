// Package escalate posts unrecoverable-failure diagnostics to an external
// webhook, typically a logic-app style automation endpoint.
package escalate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/ports"
)

var _ ports.Escalator = (*Webhook)(nil)

// Webhook delivers one diagnostic payload per escalation, attempt-once.
// There is no enable flag: escalation is unconditional once a failure
// reaches it.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{}
	}
	return &Webhook{url: url, client: client}
}

// Escalate POSTs {"message": <diagnostic>} to the configured endpoint.
func (w *Webhook) Escalate(ctx context.Context, message string) error {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return fmt.Errorf("encode escalation payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build escalation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post escalation: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("escalation endpoint returned %d", resp.StatusCode)
	}
	return nil
}
