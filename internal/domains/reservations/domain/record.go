// Package domain holds the reservation record written for each order line
// item handed to the warehouse.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformedPayload = errors.New("reservation payload is malformed")
	ErrMissingItemID    = errors.New("reservation item id is required")
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is one item reservation. Quantity is decimal on this side even
// though producers currently send integers; the warehouse contract allows
// fractional quantities.
type Record struct {
	ItemID   string          `json:"itemId"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ParseRecord deserializes a queue message payload. Any decode failure is
// terminal for the message; redelivery of bad bytes cannot help.
func ParseRecord(payload []byte) (Record, error) {
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if strings.TrimSpace(record.ItemID) == "" {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedPayload, ErrMissingItemID)
	}
	return record, nil
}

// BlobKey is the storage key the record is written under. Writing the same
// item twice overwrites the previous record.
func (r Record) BlobKey() string {
	return r.ItemID + ".json"
}

// Encode serializes the record for storage.
func (r Record) Encode() ([]byte, error) {
	return json.Marshal(r)
}
