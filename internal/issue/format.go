package issue

import (
	"fmt"
	"strings"
)

// NumberedSteps renders the kept steps as a numbered list, one per line,
// starting at 1. Empty and whitespace-only entries are excluded before
// numbering so the sequence stays contiguous.
func NumberedSteps(raw []string) string {
	var sb strings.Builder
	for i, step := range CleanSteps(raw) {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return sb.String()
}

// EmailBody builds the plain-text notification body: the issue title, a
// blank line, then the numbered step list under a "Steps:" header.
func EmailBody(title string, steps []string) string {
	var sb strings.Builder
	sb.WriteString("Issue: ")
	sb.WriteString(strings.TrimSpace(title))
	sb.WriteString("\n\nSteps:\n")
	sb.WriteString(NumberedSteps(steps))
	return sb.String()
}

// Subject is the notification subject line for a submission.
func Subject(title string) string {
	return "Issue reported: " + strings.TrimSpace(title)
}
