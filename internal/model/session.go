package model

import "time"

// Session is the server-held record of an authenticated client.  It is
// referenced by an opaque id carried inside the signed session cookie; the
// record itself never leaves the server.  Sessions live only in memory and
// are lost on restart.
type Session struct {
	ID        string    // opaque session id (the "sid" claim in the cookie token)
	UserID    int64     // owning user
	Email     string    // user email at login time
	Role      string    // role copied from the user record
	Name      string    // display name copied from the user record
	ExpiresAt time.Time // absolute expiry; expired sessions are treated as absent
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
