package notify

import (
	"context"
	"errors"
)

var (
	ErrInvalidConfig = errors.New("notify: invalid relay config")
	ErrSendFailed    = errors.New("notify: failed to dispatch notification")
)

// Notification is one outbound issue notification. StepList is the
// numbered step list joined by newlines, passed to the template separately
// from the full message body.
type Notification struct {
	RecipientEmail string
	SenderEmail    string
	Subject        string
	Message        string
	StepList       string
}

// Sender dispatches a notification email.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}
