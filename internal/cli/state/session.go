package state

import "time"

// Status is the client's belief about its session with a server
type Status int

const (
	Unauthenticated Status = iota
	Authenticated
)

func (s Status) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Session is the client-side view of a server session. It is a value:
// the Store hands out copies and only its transition functions change
// the stored one.
type Session struct {
	Server    string
	Status    Status
	UserType  string
	Subject   string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// Authenticated reports whether the client believes it holds a valid session
func (s Session) Authenticated() bool {
	return s.Status == Authenticated
}

// Expired reports whether the access token has passed its expiry at now
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
