package queue

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func enabledPublisher(w messageWriter) *Publisher {
	p := NewPublisher(Config{Enabled: true, Topic: "orderitemsreserver"})
	p.writer = w
	return p
}

func TestPublisher_Publish_OneMessagePerItem(t *testing.T) {
	w := &fakeWriter{}
	p := enabledPublisher(w)

	err := p.Publish(context.Background(), []types.ReservationRequest{
		{ItemID: "item-a", Quantity: 2},
		{ItemID: "item-b", Quantity: 4},
	})

	require.NoError(t, err)
	require.Len(t, w.msgs, 2)
	assert.Equal(t, []byte("item-a"), w.msgs[0].Key)
	assert.Equal(t, []byte("item-b"), w.msgs[1].Key)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &body))
	assert.Equal(t, "item-a", body["itemId"])
	assert.Equal(t, float64(2), body["quantity"])
}

func TestPublisher_Publish_OversizedPayloadFailsBeforeWrite(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(Config{Enabled: true, MaxMessageBytes: 32})
	p.writer = w

	err := p.Publish(context.Background(), []types.ReservationRequest{
		{ItemID: strings.Repeat("x", 64), Quantity: 1},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMessageTooLarge)
	assert.Empty(t, w.msgs)
}

func TestPublisher_Publish_BrokerSizeRejection(t *testing.T) {
	w := &fakeWriter{err: kafka.MessageTooLargeError{Message: kafka.Message{Key: []byte("item-a")}}}
	p := enabledPublisher(w)

	err := p.Publish(context.Background(), []types.ReservationRequest{{ItemID: "item-a", Quantity: 1}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMessageTooLarge)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestPublisher_Publish_BrokerFailureIsTransportError(t *testing.T) {
	w := &fakeWriter{err: errors.New("dial tcp: connection refused")}
	p := enabledPublisher(w)

	err := p.Publish(context.Background(), []types.ReservationRequest{{ItemID: "item-a", Quantity: 1}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestPublisher_Publish_DisabledOrEmptyIsNoop(t *testing.T) {
	p := NewPublisher(Config{Enabled: false})
	assert.NoError(t, p.Publish(context.Background(), []types.ReservationRequest{{ItemID: "a", Quantity: 1}}))

	w := &fakeWriter{err: errors.New("should not be called")}
	enabled := enabledPublisher(w)
	assert.NoError(t, enabled.Publish(context.Background(), nil))
}
