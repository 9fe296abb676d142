package handler

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dev-ahmed/issue-reporter/internal/issue"
	"github.com/dev-ahmed/issue-reporter/internal/security"
	"github.com/dev-ahmed/issue-reporter/internal/workflow"
)

const retryMessage = "Something went wrong sending your report. Please try again."

type submissionFlow interface {
	Begin(ctx context.Context, form workflow.FormInput) (string, issue.FieldErrors)
	Confirm(ctx context.Context, token, recipient string) error
	Cancel(token string)
}

// FormHandler serves the issue form and drives the submission flow through
// the recipient dialog.
type FormHandler struct {
	flow      submissionFlow
	limiter   *security.RateLimiter
	templates *template.Template
	logger    *slog.Logger
}

func NewFormHandler(flow submissionFlow, limiter *security.RateLimiter, tmpl *template.Template, logger *slog.Logger) *FormHandler {
	return &FormHandler{flow: flow, limiter: limiter, templates: tmpl, logger: logger}
}

// formView is the render state of the page: the field values as posted,
// per-field errors, the focus target for step inputs, and the recipient
// dialog state.
type formView struct {
	Title       string
	SenderEmail string
	Steps       []string
	FocusIndex  int
	Errors      issue.FieldErrors
	RootError   string
	Notice      string

	DialogOpen     bool
	Token          string
	Recipient      string
	RecipientError string
}

// readView pulls the posted field values into a fresh view. The step list
// keeps its input order and is padded to at least one entry.
func readView(r *http.Request) formView {
	_ = r.ParseForm()
	return formView{
		Title:       r.Form.Get("title"),
		SenderEmail: r.Form.Get("sender_email"),
		Steps:       issue.NewStepList(r.Form["step"]).Values(),
		FocusIndex:  -1,
	}
}

func (h *FormHandler) render(w http.ResponseWriter, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "form.html", view); err != nil {
		h.logger.Error("form: template error", "err", err)
	}
}

// Page renders the empty form.
func (h *FormHandler) Page(w http.ResponseWriter, r *http.Request) {
	view := formView{Steps: []string{""}, FocusIndex: -1}
	if r.URL.Query().Get("sent") == "1" {
		view.Notice = "Your issue was sent. Thank you!"
	}
	h.render(w, view)
}

// AddStep appends one empty step entry and re-renders with it as the focus
// target. Always grows the list by exactly one.
func (h *FormHandler) AddStep(w http.ResponseWriter, r *http.Request) {
	view := readView(r)

	list := issue.NewStepList(view.Steps)
	view.FocusIndex = list.Append()
	view.Steps = list.Values()

	h.render(w, view)
}

// Submit validates the form and, when it passes, opens the recipient
// dialog over the staged attempt.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		http.Error(w, "Please try again later", http.StatusTooManyRequests)
		return
	}

	view := readView(r)

	token, errs := h.flow.Begin(r.Context(), workflow.FormInput{
		Title:       view.Title,
		SenderEmail: view.SenderEmail,
		Steps:       view.Steps,
	})
	if errs != nil {
		view.Errors = errs
		h.render(w, view)
		return
	}

	view.DialogOpen = true
	view.Token = token
	h.render(w, view)
}

// Confirm runs the staged attempt with the collected recipient. On success
// the form resets via redirect; failures re-render with a generic retry
// message and the field values intact.
func (h *FormHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		http.Error(w, "Please try again later", http.StatusTooManyRequests)
		return
	}

	view := readView(r)
	view.Token = r.Form.Get("token")
	view.Recipient = r.Form.Get("recipient")

	err := h.flow.Confirm(r.Context(), view.Token, view.Recipient)
	switch {
	case err == nil:
		http.Redirect(w, r, "/?sent=1", http.StatusSeeOther)

	case errors.Is(err, workflow.ErrRecipientRequired):
		view.DialogOpen = true
		view.RecipientError = "Recipient email is required"
		h.render(w, view)

	case errors.Is(err, workflow.ErrUnknownAttempt):
		view.RootError = "This submission expired. Please submit again."
		h.render(w, view)

	case errors.Is(err, workflow.ErrStoreWrite):
		// The attempt is still staged; keep the dialog open for a manual
		// retry.
		view.DialogOpen = true
		view.RootError = retryMessage
		h.render(w, view)

	default:
		// Notification dispatch failed after the record was written; the
		// attempt is spent, so the dialog closes.
		view.RootError = retryMessage
		h.render(w, view)
	}
}

// Cancel discards the staged attempt and closes the dialog. The field
// values round-trip untouched.
func (h *FormHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	view := readView(r)
	h.flow.Cancel(r.Form.Get("token"))
	h.render(w, view)
}
