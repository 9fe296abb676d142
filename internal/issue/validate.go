package issue

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field keys used in FieldErrors. FieldSteps carries the list-level error
// when no usable step remains after trimming.
const (
	FieldTitle       = "title"
	FieldSenderEmail = "senderEmail"
	FieldSteps       = "steps"
)

const minTitleLen = 3

// Simplified local@domain.tld check, case-insensitive. Deliverability is the
// relay's problem; this only rejects obviously malformed addresses.
var emailRegex = regexp.MustCompile(`(?i)^[^@\s]+@[^@\s]+\.[a-z]{2,}$`)

// FieldErrors maps a field key to a user-facing message.
type FieldErrors map[string]string

// ValidEmail reports whether s passes the simplified address check.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Validate applies the form rules: title required and at least three
// characters, sender email well-formed, at least one non-empty step.
// An empty result means the form may proceed.
func Validate(title, senderEmail string, steps []string) FieldErrors {
	errs := FieldErrors{}

	switch t := strings.TrimSpace(title); {
	case t == "":
		errs[FieldTitle] = "Title is required"
	case utf8.RuneCountInString(t) < minTitleLen:
		errs[FieldTitle] = "Title must be at least 3 characters"
	}

	switch e := strings.TrimSpace(senderEmail); {
	case e == "":
		errs[FieldSenderEmail] = "Your email is required"
	case !ValidEmail(e):
		errs[FieldSenderEmail] = "Enter a valid email address"
	}

	if len(CleanSteps(steps)) == 0 {
		errs[FieldSteps] = "Add at least one step"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
