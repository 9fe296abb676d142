package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-ahmed/issue-reporter/internal/config"
	"github.com/dev-ahmed/issue-reporter/internal/notify"
)

func relayConfig(endpoint string) config.Relay {
	return config.Relay{
		Endpoint:   endpoint,
		ServiceID:  "service_abc",
		TemplateID: "template_xyz",
		UserID:     "user_123",
		Timeout:    time.Second,
	}
}

func TestRelayClientSend(t *testing.T) {
	t.Parallel()

	var got struct {
		ServiceID      string            `json:"service_id"`
		TemplateID     string            `json:"template_id"`
		UserID         string            `json:"user_id"`
		TemplateParams map[string]string `json:"template_params"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	client, err := notify.NewRelayClient(relayConfig(srv.URL))
	require.NoError(t, err)

	err = client.Send(context.Background(), notify.Notification{
		RecipientEmail: "dev@example.com",
		SenderEmail:    "reporter@example.com",
		Subject:        "Issue reported: Crash on save",
		Message:        "Issue: Crash on save\n\nSteps:\n1. open the app\n",
		StepList:       "1. open the app\n",
	})
	require.NoError(t, err)

	assert.Equal(t, "service_abc", got.ServiceID)
	assert.Equal(t, "template_xyz", got.TemplateID)
	assert.Equal(t, "user_123", got.UserID)
	assert.Equal(t, "dev@example.com", got.TemplateParams["to_email"])
	assert.Equal(t, "reporter@example.com", got.TemplateParams["from_email"])
	assert.Equal(t, "Issue reported: Crash on save", got.TemplateParams["subject"])
	assert.Equal(t, "1. open the app\n", got.TemplateParams["steps"])
}

func TestRelayClientNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The user_id parameter is invalid", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := notify.NewRelayClient(relayConfig(srv.URL))
	require.NoError(t, err)

	err = client.Send(context.Background(), notify.Notification{RecipientEmail: "dev@example.com"})
	require.ErrorIs(t, err, notify.ErrSendFailed)
	assert.Contains(t, err.Error(), "403")
}

func TestRelayClientUnreachable(t *testing.T) {
	t.Parallel()

	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := notify.NewRelayClient(relayConfig(url))
	require.NoError(t, err)

	err = client.Send(context.Background(), notify.Notification{})
	require.ErrorIs(t, err, notify.ErrSendFailed)
}

func TestNewRelayClientValidation(t *testing.T) {
	t.Parallel()

	cfg := relayConfig("https://relay.example.com/send")
	cfg.UserID = ""
	_, err := notify.NewRelayClient(cfg)
	require.ErrorIs(t, err, notify.ErrInvalidConfig)

	cfg = relayConfig("")
	_, err = notify.NewRelayClient(cfg)
	require.ErrorIs(t, err, notify.ErrInvalidConfig)
}
