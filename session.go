package todo

type SessionStatus int

const (
	SessionInitializing SessionStatus = iota
	SessionAuthenticated
	SessionAnonymous
)

func (s SessionStatus) String() string {
	switch s {
	case SessionInitializing:
		return "initializing"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Session is a point-in-time view of the client's auth state. A non-nil
// User implies Token was validated against the service.
type Session struct {
	Status SessionStatus
	User   *User
	Token  string
}
