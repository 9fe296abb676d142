package issue

import "strings"

// StepList is the ordered list of step inputs shown on the form. It always
// holds at least one entry and only ever grows; entries are addressed by
// position.
type StepList struct {
	entries []string
}

// NewStepList copies values into a list, padding to one empty entry when
// values is empty.
func NewStepList(values []string) StepList {
	entries := make([]string, 0, len(values))
	entries = append(entries, values...)
	if len(entries) == 0 {
		entries = append(entries, "")
	}
	return StepList{entries: entries}
}

// Append adds one empty entry and returns its index, which the form uses as
// the focus target for the next render.
func (l *StepList) Append() int {
	l.entries = append(l.entries, "")
	return len(l.entries) - 1
}

func (l StepList) Len() int {
	return len(l.entries)
}

// Values returns a copy of the raw entries in input order.
func (l StepList) Values() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// CleanSteps trims every entry and drops the ones that end up empty,
// preserving input order.
func CleanSteps(raw []string) []string {
	var steps []string
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			steps = append(steps, t)
		}
	}
	return steps
}
