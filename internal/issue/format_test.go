package issue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev-ahmed/issue-reporter/internal/issue"
)

func TestNumberedSteps(t *testing.T) {
	t.Parallel()

	t.Run("drops blanks and renumbers contiguously", func(t *testing.T) {
		t.Parallel()
		got := issue.NumberedSteps([]string{"", " a ", "b", ""})
		assert.Equal(t, "1. a\n2. b\n", got)
	})

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()
		got := issue.NumberedSteps([]string{"second comes first", "then this"})
		assert.Equal(t, "1. second comes first\n2. then this\n", got)
	})

	t.Run("empty input renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", issue.NumberedSteps([]string{"  ", ""}))
	})
}

func TestEmailBody(t *testing.T) {
	t.Parallel()

	got := issue.EmailBody("Crash on save", []string{"open the app", "", "click save"})
	want := "Issue: Crash on save\n\nSteps:\n1. open the app\n2. click save\n"
	assert.Equal(t, want, got)
}

func TestStepListAppend(t *testing.T) {
	t.Parallel()

	list := issue.NewStepList([]string{"first"})
	assert.Equal(t, 1, list.Len())

	idx := list.Append()
	assert.Equal(t, 1, idx, "new entry index is the focus target")
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, []string{"first", ""}, list.Values())

	// Grows by exactly one each time, never shrinks.
	idx = list.Append()
	assert.Equal(t, 2, idx)
	assert.Equal(t, 3, list.Len())
}

func TestNewStepListPadsToOneEntry(t *testing.T) {
	t.Parallel()

	list := issue.NewStepList(nil)
	assert.Equal(t, []string{""}, list.Values())
}
