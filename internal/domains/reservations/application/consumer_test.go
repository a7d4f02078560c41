package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopweb/order-pipeline/internal/domains/reservations/domain"
)

type fakeStore struct {
	records  []domain.Record
	failures int
	attempts int
}

func (f *fakeStore) Put(_ context.Context, record domain.Record) error {
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("storage unavailable")
	}
	f.records = append(f.records, record)
	return nil
}

type fakeEscalator struct {
	messages []string
	err      error
}

func (f *fakeEscalator) Escalate(_ context.Context, message string) error {
	f.messages = append(f.messages, message)
	return f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProcessor(store *fakeStore, escalator *fakeEscalator) *Processor {
	return NewProcessor(store, escalator, WithProcessorLogger(quietLogger()))
}

func TestProcessor_Process_WritesRecord(t *testing.T) {
	store := &fakeStore{}
	escalator := &fakeEscalator{}
	p := newProcessor(store, escalator)

	err := p.Process(context.Background(), []byte(`{"itemId":"A","quantity":2}`))

	require.NoError(t, err)
	require.Len(t, store.records, 1)
	assert.Equal(t, "A", store.records[0].ItemID)
	assert.True(t, store.records[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Empty(t, escalator.messages)
}

func TestProcessor_Process_RecoversWithinRetryBudget(t *testing.T) {
	store := &fakeStore{failures: 2}
	escalator := &fakeEscalator{}
	p := newProcessor(store, escalator)

	err := p.Process(context.Background(), []byte(`{"itemId":"A","quantity":2}`))

	require.NoError(t, err)
	assert.Equal(t, 3, store.attempts)
	assert.Len(t, store.records, 1)
	assert.Empty(t, escalator.messages)
}

func TestProcessor_Process_ExhaustedRetriesEscalateOnce(t *testing.T) {
	store := &fakeStore{failures: 10}
	escalator := &fakeEscalator{}
	p := newProcessor(store, escalator)

	err := p.Process(context.Background(), []byte(`{"itemId":"A","quantity":2}`))

	require.Error(t, err)
	assert.Equal(t, 3, store.attempts)
	require.Len(t, escalator.messages, 1)
	assert.Contains(t, escalator.messages[0], "exception has thrown while sending order to warehouse: 'storage unavailable'")
	assert.Contains(t, escalator.messages[0], "StackTrace")
}

func TestProcessor_Process_MalformedPayloadIsTerminal(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{"itemId":`},
		{"missing item id", `{"quantity":2}`},
		{"wrong quantity type", `{"itemId":"A","quantity":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			escalator := &fakeEscalator{}
			p := newProcessor(store, escalator)

			err := p.Process(context.Background(), []byte(tt.payload))

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
			assert.Zero(t, store.attempts, "malformed payloads must not reach storage")
			assert.Len(t, escalator.messages, 1)
		})
	}
}

func TestProcessor_Process_EscalationFailureIsUnobserved(t *testing.T) {
	store := &fakeStore{failures: 10}
	escalator := &fakeEscalator{err: errors.New("webhook down")}
	p := newProcessor(store, escalator)

	err := p.Process(context.Background(), []byte(`{"itemId":"A","quantity":2}`))

	// The original storage failure surfaces, not the escalation failure.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage unavailable")
}

func TestProcessor_Process_CustomRetryPolicy(t *testing.T) {
	store := &fakeStore{failures: 10}
	p := NewProcessor(store, nil,
		WithProcessorLogger(quietLogger()),
		WithRetryPolicy(RetryPolicy{Attempts: 5}))

	err := p.Process(context.Background(), []byte(`{"itemId":"A","quantity":2}`))

	require.Error(t, err)
	assert.Equal(t, 5, store.attempts)
}

func TestProcessor_Process_OverwriteIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	p := newProcessor(store, &fakeEscalator{})

	payload := []byte(`{"itemId":"A","quantity":2}`)
	require.NoError(t, p.Process(context.Background(), payload))
	require.NoError(t, p.Process(context.Background(), payload))

	assert.Len(t, store.records, 2)
	assert.Equal(t, store.records[0], store.records[1])
}
