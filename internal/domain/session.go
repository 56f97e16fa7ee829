package domain

import "time"

// Session is the explicit replacement for the ambient bearer token:
// acquired at login, carried through every authenticated request, and
// invalidated at logout or expiry.
type Session struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	UpstreamToken string    `json:"-"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
