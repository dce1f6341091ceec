package pool

import "time"

// sessionLifetime is how long the ledger service keeps a session usable.
const sessionLifetime = 10 * time.Minute

// Session is an opaque, time-limited handle to an established ledger
// session. It is immutable and safe to share by reference; the pool
// hands out each *Session to at most one caller at a time.
type Session struct {
	token     string
	createdAt time.Time
}

// NewSession wraps a freshly issued session token.
func NewSession(token string) *Session {
	return &Session{
		token:     token,
		createdAt: time.Now(),
	}
}

// Token returns the opaque session token issued by the ledger service.
func (s *Session) Token() string {
	return s.token
}

// Valid reports whether the session is still within its lifetime.
func (s *Session) Valid() bool {
	return time.Since(s.createdAt) < sessionLifetime
}
