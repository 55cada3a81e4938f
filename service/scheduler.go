package service

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// AgreementScheduler runs deferred fire-and-check tasks keyed by contract id.
// Tasks carry no cancellation handle: a contract that left pending before its
// timer fires simply makes the fired conditional update a no-op.
type AgreementScheduler struct {
	mu      sync.Mutex
	timers  map[int64]*time.Timer
	stopped bool
}

// NewAgreementScheduler creates a new scheduler
func NewAgreementScheduler() *AgreementScheduler {
	return &AgreementScheduler{
		timers: make(map[int64]*time.Timer),
	}
}

// Schedule registers fn to run after delay for the given contract id.
// Scheduling again for the same id replaces the previous timer.
func (s *AgreementScheduler) Schedule(contractID int64, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		log.Warnf("Scheduler stopped, dropping timer for contract %d", contractID)
		return
	}

	if existing, ok := s.timers[contractID]; ok {
		existing.Stop()
	}

	s.timers[contractID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, contractID)
		s.mu.Unlock()
		fn()
	})
}

// Stop cancels all outstanding timers. Used on shutdown; timers that already
// fired are unaffected.
func (s *AgreementScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Pending reports the number of outstanding timers
func (s *AgreementScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
