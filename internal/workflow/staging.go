package workflow

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dev-ahmed/issue-reporter/internal/fsm"
)

// attemptTTL bounds how long a validated submission may sit waiting for a
// recipient before it is swept.
const attemptTTL = 15 * time.Minute

// attempt is one staged submission: the validated form data plus the state
// machine tracking it through persist and notify.
type attempt struct {
	title       string
	senderEmail string
	steps       []string
	machine     *fsm.Machine
	stagedAt    time.Time
}

// stagingArea holds attempts between validation and recipient confirmation,
// keyed by an opaque token the form carries through the dialog round trip.
type stagingArea struct {
	mu       sync.Mutex
	attempts map[string]*attempt
	now      func() time.Time
}

func newStagingArea() *stagingArea {
	return &stagingArea{
		attempts: make(map[string]*attempt),
		now:      time.Now,
	}
}

func (s *stagingArea) put(a *attempt) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	token := uuid.NewString()
	a.stagedAt = s.now()
	s.attempts[token] = a
	return token
}

func (s *stagingArea) get(token string) (*attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	a, ok := s.attempts[token]
	return a, ok
}

func (s *stagingArea) remove(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, token)
}

// sweep drops expired attempts. Caller must hold the lock.
func (s *stagingArea) sweep() {
	cutoff := s.now().Add(-attemptTTL)
	for token, a := range s.attempts {
		if a.stagedAt.Before(cutoff) {
			delete(s.attempts, token)
		}
	}
}
