package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dev-ahmed/issue-reporter/internal/fsm"
	"github.com/dev-ahmed/issue-reporter/internal/issue"
	"github.com/dev-ahmed/issue-reporter/internal/notify"
)

var (
	ErrUnknownAttempt    = errors.New("workflow: unknown or expired attempt")
	ErrRecipientRequired = errors.New("workflow: recipient email is required")
	ErrStoreWrite        = errors.New("workflow: store write failed")
	ErrNotifyDispatch    = errors.New("workflow: notification dispatch failed")
)

// Store appends one submission and returns its assigned id.
type Store interface {
	Append(ctx context.Context, sub issue.Submission) (string, error)
}

// FormInput is the raw form data as posted: untrimmed title and email, the
// step entries in input order.
type FormInput struct {
	Title       string
	SenderEmail string
	Steps       []string
}

// Workflow drives a submission from validation through recipient
// collection, persistence and notification. External calls are strictly
// sequential: the store write completes before the notifier is invoked,
// and neither is retried automatically.
type Workflow struct {
	store    Store
	notifier notify.Sender
	staging  *stagingArea
	logger   *slog.Logger
}

func New(store Store, notifier notify.Sender, logger *slog.Logger) *Workflow {
	return &Workflow{
		store:    store,
		notifier: notifier,
		staging:  newStagingArea(),
		logger:   logger,
	}
}

// Begin validates the form. On failure it returns the field errors and
// stages nothing. On success the cleaned data is staged under the returned
// token and the attempt waits for a recipient.
func (w *Workflow) Begin(ctx context.Context, form FormInput) (string, issue.FieldErrors) {
	m := newMachine()
	_ = m.Fire(ctx, eventSubmit, nil)

	errs := issue.Validate(form.Title, form.SenderEmail, form.Steps)
	steps := issue.CleanSteps(form.Steps)
	if errs != nil {
		_ = m.Fire(ctx, eventReject, nil)
		return "", errs
	}
	if err := m.Fire(ctx, eventAccept, steps); err != nil {
		// Unreachable while validation requires a non-empty step list;
		// treat as the list-level error rather than panicking.
		_ = m.Fire(ctx, eventReject, nil)
		return "", issue.FieldErrors{issue.FieldSteps: "Add at least one step"}
	}

	token := w.staging.put(&attempt{
		title:       strings.TrimSpace(form.Title),
		senderEmail: strings.TrimSpace(form.SenderEmail),
		steps:       steps,
		machine:     m,
	})
	w.logger.Debug("submission staged", "steps", len(steps))
	return token, nil
}

// Confirm runs the staged attempt to completion: build the record, append
// it to the store, dispatch the notification, discard the attempt.
//
// A store failure leaves the attempt staged so the dialog can be confirmed
// again manually. A notification failure is reported but the record stays
// in the store untouched; the attempt is spent.
func (w *Workflow) Confirm(ctx context.Context, token, recipient string) error {
	recipient = strings.TrimSpace(recipient)

	att, ok := w.staging.get(token)
	if !ok {
		return ErrUnknownAttempt
	}

	if err := att.machine.Fire(ctx, eventConfirm, recipient); err != nil {
		if errors.Is(err, fsm.ErrRejected) {
			return ErrRecipientRequired
		}
		return err
	}

	sub := issue.Submission{
		Title:          att.title,
		SenderEmail:    att.senderEmail,
		Steps:          att.steps,
		RecipientEmail: recipient,
	}

	id, err := w.store.Append(ctx, sub)
	if err != nil {
		_ = att.machine.Fire(ctx, eventFail, nil)
		w.logger.Error("submission write failed", "error", err)
		return errors.Join(ErrStoreWrite, err)
	}
	_ = att.machine.Fire(ctx, eventPersisted, nil)

	n := notify.Notification{
		RecipientEmail: recipient,
		SenderEmail:    att.senderEmail,
		Subject:        issue.Subject(att.title),
		Message:        issue.EmailBody(att.title, att.steps),
		StepList:       issue.NumberedSteps(att.steps),
	}
	if err := w.notifier.Send(ctx, n); err != nil {
		_ = att.machine.Fire(ctx, eventFail, nil)
		// The record is already written and is not retracted.
		w.staging.remove(token)
		w.logger.Error("notification dispatch failed", "id", id, "error", err)
		return errors.Join(ErrNotifyDispatch, err)
	}
	_ = att.machine.Fire(ctx, eventNotified, nil)

	w.staging.remove(token)
	w.logger.Info("submission completed", "id", id)
	return nil
}

// Cancel discards a staged attempt without touching either external
// service. Unknown tokens are ignored; cancelling twice is harmless.
func (w *Workflow) Cancel(token string) {
	if att, ok := w.staging.get(token); ok {
		_ = att.machine.Fire(context.Background(), eventCancel, nil)
	}
	w.staging.remove(token)
}
