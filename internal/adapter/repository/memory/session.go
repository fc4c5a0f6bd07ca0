package memory

import (
	"sync"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// SessionRepository keeps the single logged-in session in memory.
type SessionRepository struct {
	mu      sync.RWMutex
	session *domain.Session
}

// NewSessionRepository creates a repository with nobody logged in.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// SaveSession replaces the current session.
func (r *SessionRepository) SaveSession(session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = &session
	return nil
}

// LoadSession returns the current session.
func (r *SessionRepository) LoadSession() (domain.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return domain.Session{}, false, nil
	}
	return *r.session, true, nil
}

// ClearSession logs out.
func (r *SessionRepository) ClearSession() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
