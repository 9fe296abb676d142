package fsm

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State and Event are plain names; the machine compares them by value.
type (
	State string
	Event string
)

// Guard decides at fire time whether a transition may proceed.
type Guard func(ctx context.Context, data any) bool

// Transition moves the machine from From to To when Event fires and the
// guard (if any) passes.
type Transition struct {
	From  State
	To    State
	Event Event
	Guard Guard
}

var (
	ErrNoTransition = errors.New("fsm: no transition for event")
	ErrRejected     = errors.New("fsm: transition rejected by guard")
)

// Machine is a small thread-safe finite state machine. Transitions are fixed
// at construction; multiple transitions for the same state/event pair are
// tried in declaration order and the first passing guard wins.
type Machine struct {
	mu          sync.RWMutex
	initial     State
	current     State
	transitions map[State]map[Event][]Transition
}

func New(initial State, transitions ...Transition) *Machine {
	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event][]Transition),
	}
	for _, t := range transitions {
		if m.transitions[t.From] == nil {
			m.transitions[t.From] = make(map[Event][]Transition)
		}
		m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
	}
	return m
}

func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire applies event to the current state. It returns ErrNoTransition when
// the event is not defined for the state, and ErrRejected when every
// candidate transition's guard refuses.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return fmt.Errorf("%w: %q in state %q", ErrNoTransition, event, m.current)
	}

	for _, t := range candidates {
		if t.Guard == nil || t.Guard(ctx, data) {
			m.current = t.To
			return nil
		}
	}
	return fmt.Errorf("%w: %q in state %q", ErrRejected, event, m.current)
}

// CanFire reports whether Fire would succeed, without changing state.
func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.transitions[m.current][event] {
		if t.Guard == nil || t.Guard(ctx, data) {
			return true
		}
	}
	return false
}

// Reset returns the machine to its initial state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
