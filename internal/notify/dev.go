package notify

import (
	"context"
	"log/slog"

	"github.com/dev-ahmed/issue-reporter/internal/config"
)

// LogSender logs notifications instead of dispatching them. Used when no
// relay account is configured, so the full flow stays exercisable locally.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.logger.Info("notification (relay not configured, not sent)",
		"to", n.RecipientEmail,
		"from", n.SenderEmail,
		"subject", n.Subject,
	)
	s.logger.Debug("notification body", "message", n.Message)
	return nil
}

// NewSender picks the relay client when credentials are present and the
// log-only sender otherwise.
func NewSender(cfg config.Relay, logger *slog.Logger) (Sender, error) {
	if !cfg.Configured() {
		logger.Warn("relay not configured, notifications will be logged only")
		return NewLogSender(logger), nil
	}
	return NewRelayClient(cfg)
}
