package contracts

import (
	"sync"
	"time"
)

// approvalSession tracks an outstanding result approval window. The approve
// button stays on the message after expiry; the session is what decides
// whether a press still counts.
type approvalSession struct {
	contractID  int64
	submitterID int64
	expiresAt   time.Time
}

type approvalSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]approvalSession
}

func newApprovalSessionStore() *approvalSessionStore {
	return &approvalSessionStore{
		sessions: make(map[int64]approvalSession),
	}
}

// open starts an approval window for the contract, replacing any previous one
func (s *approvalSessionStore) open(contractID, submitterID int64, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[contractID] = approvalSession{
		contractID:  contractID,
		submitterID: submitterID,
		expiresAt:   time.Now().Add(ttl),
	}
}

// take removes and returns the session if it exists and has not expired
func (s *approvalSessionStore) take(contractID int64) (approvalSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[contractID]
	if !ok {
		return approvalSession{}, false
	}
	if time.Now().After(session.expiresAt) {
		delete(s.sessions, contractID)
		return approvalSession{}, false
	}

	delete(s.sessions, contractID)
	return session, true
}

// cleanup drops all expired sessions
func (s *approvalSessionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, session := range s.sessions {
		if now.After(session.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

// size reports the number of live sessions
func (s *approvalSessionStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
