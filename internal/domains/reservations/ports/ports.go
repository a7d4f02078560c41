package ports

import (
	"context"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/domain"
)

// RecordStore persists reservation records durably. Put overwrites any
// existing record for the same item.
type RecordStore interface {
	Put(ctx context.Context, record domain.Record) error
}

// Escalator reports an unrecoverable processing failure out of band. It is
// the last line of defense: implementations get one attempt and their own
// failures are not further handled.
type Escalator interface {
	Escalate(ctx context.Context, message string) error
}
