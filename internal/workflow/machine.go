package workflow

import (
	"context"
	"strings"

	"github.com/dev-ahmed/issue-reporter/internal/fsm"
)

// Submission attempt states.
const (
	StateIdle              = fsm.State("idle")
	StateValidating        = fsm.State("validating")
	StateAwaitingRecipient = fsm.State("awaiting_recipient")
	StatePersisting        = fsm.State("persisting")
	StateNotifying         = fsm.State("notifying")
	StateFailed            = fsm.State("failed")
)

// Events driving an attempt through its states.
const (
	eventSubmit    = fsm.Event("submit")
	eventAccept    = fsm.Event("accept")
	eventReject    = fsm.Event("reject")
	eventConfirm   = fsm.Event("confirm")
	eventCancel    = fsm.Event("cancel")
	eventPersisted = fsm.Event("persisted")
	eventNotified  = fsm.Event("notified")
	eventFail      = fsm.Event("fail")
)

// hasSteps expects the cleaned step list as event data.
func hasSteps(_ context.Context, data any) bool {
	steps, _ := data.([]string)
	return len(steps) > 0
}

// hasRecipient expects the recipient address as event data.
func hasRecipient(_ context.Context, data any) bool {
	recipient, _ := data.(string)
	return strings.TrimSpace(recipient) != ""
}

// newMachine builds the per-attempt state machine:
//
//	Idle → Validating → AwaitingRecipient → Persisting → Notifying → Idle
//
// with cancellation back to Idle, failure into Failed, and a manual retry
// path Failed → Persisting for a store write that did not go through.
func newMachine() *fsm.Machine {
	return fsm.New(StateIdle,
		fsm.Transition{From: StateIdle, To: StateValidating, Event: eventSubmit},
		fsm.Transition{From: StateValidating, To: StateAwaitingRecipient, Event: eventAccept, Guard: hasSteps},
		fsm.Transition{From: StateValidating, To: StateIdle, Event: eventReject},
		fsm.Transition{From: StateAwaitingRecipient, To: StatePersisting, Event: eventConfirm, Guard: hasRecipient},
		fsm.Transition{From: StateAwaitingRecipient, To: StateIdle, Event: eventCancel},
		fsm.Transition{From: StatePersisting, To: StateNotifying, Event: eventPersisted},
		fsm.Transition{From: StatePersisting, To: StateFailed, Event: eventFail},
		fsm.Transition{From: StateNotifying, To: StateIdle, Event: eventNotified},
		fsm.Transition{From: StateNotifying, To: StateFailed, Event: eventFail},
		fsm.Transition{From: StateFailed, To: StatePersisting, Event: eventConfirm, Guard: hasRecipient},
		fsm.Transition{From: StateFailed, To: StateIdle, Event: eventCancel},
	)
}
