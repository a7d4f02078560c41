//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/eshopweb/order-pipeline/internal/domains/orders/adapters/notify"
	orderstypes "github.com/eshopweb/order-pipeline/internal/domains/orders/application/types"
	"github.com/eshopweb/order-pipeline/internal/domains/reservations/adapters/escalate"
	pacttest "github.com/eshopweb/order-pipeline/test/pact"
)

func newPact(t *testing.T, provider string) *pactconsumer.V2HTTPMockProvider {
	t.Helper()
	pactlog.SetLogLevel("INFO")
	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: provider,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)
	return pact
}

func TestOrderDetailsSinkContract(t *testing.T) {
	pact := newPact(t, pacttest.ProviderOrderDetails)

	pact.AddInteraction().
		Given(pacttest.StateSinkAvailable).
		UponReceiving("an order details notification").
		WithRequest("POST", "/", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"id":       matchers.Like("c8d2f9a0-4a5b-4e7d-9f3c-2b1a0e9d8c7b"),
				"quantity": matchers.Integer(1),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		sender := notify.NewSender(notify.Config{
			Enabled: true,
			URL:     fmt.Sprintf("http://%s:%d/", config.Host, config.Port),
		}, nil)
		return sender.Send(context.Background(), orderstypes.OrderDetailsNotice{
			ID:       "c8d2f9a0-4a5b-4e7d-9f3c-2b1a0e9d8c7b",
			Quantity: 1,
		})
	})
	require.NoError(t, err)
}

func TestDeliveryDetailsSinkContract(t *testing.T) {
	pact := newPact(t, pacttest.ProviderDeliveryDetails)

	pact.AddInteraction().
		Given(pacttest.StateSinkAvailable).
		UponReceiving("a delivery details notification").
		WithRequest("POST", "/", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"shippingAddress": matchers.Like("123 Main St"),
				"items":           matchers.ArrayMinLike("Widget", 1),
				"finalPrice":      matchers.Decimal(19.98),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		sender := notify.NewSender(notify.Config{
			Enabled: true,
			URL:     fmt.Sprintf("http://%s:%d/", config.Host, config.Port),
		}, nil)
		return sender.Send(context.Background(), orderstypes.DeliveryDetailsNotice{
			ShippingAddress: "123 Main St",
			Items:           []string{"Widget"},
			FinalPrice:      decimal.NewFromFloat(19.98),
		})
	})
	require.NoError(t, err)
}

func TestEscalationWebhookContract(t *testing.T) {
	pact := newPact(t, pacttest.ProviderEscalation)

	pact.AddInteraction().
		Given(pacttest.StateSinkAvailable).
		UponReceiving("an unrecoverable failure diagnostic").
		WithRequest("POST", "/", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"message": matchers.Like("exception has thrown while sending order to warehouse: 'storage unavailable'"),
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		hook := escalate.NewWebhook(fmt.Sprintf("http://%s:%d/", config.Host, config.Port), nil)
		return hook.Escalate(context.Background(),
			"exception has thrown while sending order to warehouse: 'storage unavailable'")
	})
	require.NoError(t, err)
}
