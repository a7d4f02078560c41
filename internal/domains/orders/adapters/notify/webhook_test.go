package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_Send_PostsJSONBody(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSender(Config{Enabled: true, URL: srv.URL}, srv.Client())
	err := s.Send(context.Background(), map[string]any{"id": "o-1", "quantity": 2})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "o-1", gotBody["id"])
	assert.Equal(t, float64(2), gotBody["quantity"])
}

// The sender treats any response as delivered, including server errors.
// Sink-side failures are therefore invisible to the caller; the test pins
// that behavior so a future status check shows up as a deliberate change.
func TestSender_Send_ServerErrorStillCountsAsDelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSender(Config{Enabled: true, URL: srv.URL}, srv.Client())
	assert.NoError(t, s.Send(context.Background(), map[string]string{"k": "v"}))
}

func TestSender_Send_ConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewSender(Config{Enabled: true, URL: url}, nil)
	err := s.Send(context.Background(), map[string]string{"k": "v"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSender_Send_DisabledDoesNothing(t *testing.T) {
	// No request must leave the process; an unroutable URL proves it.
	s := NewSender(Config{Enabled: false, URL: "://not-a-url"}, nil)
	assert.NoError(t, s.Send(context.Background(), map[string]string{"k": "v"}))
}

func TestSender_Send_UnencodablePayload(t *testing.T) {
	s := NewSender(Config{Enabled: true, URL: "http://localhost:0"}, nil)
	err := s.Send(context.Background(), func() {})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransport)
}
