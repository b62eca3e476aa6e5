package store

import (
	"time"

	"github.com/iliyamo/equipment-rental/internal/model"
	"github.com/iliyamo/equipment-rental/internal/utils"
)

// CreateSession establishes a new session for the user and returns it.
// The session id is a fresh random value; the caller wraps it in a signed
// cookie token.  ttl bounds the session lifetime.
func (s *Store) CreateSession(u *model.User, ttl time.Duration) (*model.Session, error) {
	sid, err := utils.RandomHex(32)
	if err != nil {
		return nil, err
	}
	sess := &model.Session{
		ID:        sid,
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Name:      u.Name,
		ExpiresAt: now().Add(ttl),
	}

	s.sessionMu.Lock()
	s.sessions[sid] = sess
	s.sessionMu.Unlock()
	return sess, nil
}

// Session returns the live session with the given id.  Expired sessions
// are removed lazily and reported as ErrNotFound, same as unknown ids.
func (s *Store) Session(sid string) (*model.Session, error) {
	s.sessionMu.RLock()
	sess, ok := s.sessions[sid]
	s.sessionMu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(now()) {
		s.DeleteSession(sid)
		return nil, ErrNotFound
	}
	return sess, nil
}

// DeleteSession removes the session with the given id.  Deleting an
// unknown or already-deleted id is a no-op; logout is idempotent.
func (s *Store) DeleteSession(sid string) {
	s.sessionMu.Lock()
	delete(s.sessions, sid)
	s.sessionMu.Unlock()
}
