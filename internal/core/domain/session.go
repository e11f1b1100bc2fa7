package domain

// Console paths the guard and the login flow redirect to.
const (
	PathLogin        = "/login"
	PathUnauthorized = "/unauthorized"
	PathNoRole       = "/sinrol"
)

// Phase is the coarse state of the session state machine.
type Phase string

const (
	PhaseRestoring       Phase = "restoring"
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseAuthenticated   Phase = "authenticated"
)

// SessionState is a snapshot of the session store. Loading is true only while
// the startup restoration is in flight.
type SessionState struct {
	Identity *Identity `json:"identity"`
	Loading  bool      `json:"loading"`
}

// Phase derives the state machine phase from the snapshot.
func (s SessionState) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseRestoring
	case s.Identity == nil:
		return PhaseUnauthenticated
	default:
		return PhaseAuthenticated
	}
}

// Decision is the outcome of a route authorization check.
type Decision int

const (
	DecisionDefer Decision = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionDefer:
		return "defer"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}
