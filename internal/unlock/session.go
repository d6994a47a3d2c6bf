package unlock

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
)

const (
	emailKey = "resourcesUnlocked"
	timeKey  = "resourcesUnlockedTime"
)

// SessionStore keeps the unlock state in a gin session. The timestamp is
// stored as Unix milliseconds.
type SessionStore struct {
	session sessions.Session
}

var _ Store = (*SessionStore)(nil)

// NewSessionStore wraps session.
func NewSessionStore(session sessions.Session) *SessionStore {
	return &SessionStore{session: session}
}

func (s *SessionStore) Load(context.Context) (State, bool, error) {
	email, _ := s.session.Get(emailKey).(string)
	millis, _ := s.session.Get(timeKey).(int64)
	if email == "" || millis == 0 {
		return State{}, false, nil
	}
	return State{Email: email, UnlockedAt: time.UnixMilli(millis).UTC()}, true, nil
}

func (s *SessionStore) Save(_ context.Context, state State) error {
	s.session.Set(emailKey, state.Email)
	s.session.Set(timeKey, state.UnlockedAt.UnixMilli())
	return s.session.Save()
}

func (s *SessionStore) Clear(context.Context) error {
	s.session.Delete(emailKey)
	s.session.Delete(timeKey)
	return s.session.Save()
}
