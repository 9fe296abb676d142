package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dev-ahmed/issue-reporter/internal/config"
)

// relayRequest is the wire format of the hosted email-relay API: one JSON
// POST carrying the account identifiers and the template parameters.
type relayRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// RelayClient sends notifications through the hosted relay. Success is any
// 2xx response; the ack body is plain text and only read back for error
// reporting.
type RelayClient struct {
	cfg    config.Relay
	client *http.Client
}

func NewRelayClient(cfg config.Relay) (*RelayClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrInvalidConfig)
	}
	if !cfg.Configured() {
		return nil, fmt.Errorf("%w: service, template and user ids are required", ErrInvalidConfig)
	}
	return &RelayClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *RelayClient) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(relayRequest{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.UserID,
		TemplateParams: map[string]string{
			"to_email":   n.RecipientEmail,
			"from_email": n.SenderEmail,
			"subject":    n.Subject,
			"message":    n.Message,
			"steps":      n.StepList,
		},
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	defer resp.Body.Close()

	// The relay acks with a short text body; keep a snippet for the log.
	ack, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Join(ErrSendFailed, fmt.Errorf("relay responded %d: %s", resp.StatusCode, ack))
	}
	return nil
}
