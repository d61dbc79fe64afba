package consolesdk

// Decision is the three-state outcome of an authorization check. The third
// state exists so callers cannot misread "no session" as an allow or a deny
// by accident; navigation code treats anything but DecisionAllowed as a
// redirect.
type Decision int

const (
	// DecisionNoSession means nobody is signed in; the caller should route
	// to the authentication entry point rather than a forbidden page.
	DecisionNoSession Decision = iota
	// DecisionDenied means a session exists but lacks the required role, or
	// the pathname is unknown.
	DecisionDenied
	// DecisionAllowed means the session may navigate to the pathname.
	DecisionAllowed
)

func (d Decision) String() string {
	switch d {
	case DecisionNoSession:
		return "no-session"
	case DecisionDenied:
		return "denied"
	case DecisionAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// IsZero reports whether the session record is empty, i.e. anonymous.
func (u User) IsZero() bool {
	return u == User{}
}

// Authorize decides whether the session may navigate to pathname. Unknown
// pathnames are denied. Routes without a role set are open to any session;
// otherwise the session's role must be a member of the route's set.
func Authorize(session User, pathname string) Decision {
	if session.IsZero() {
		return DecisionNoSession
	}

	route, found := FindRoute(pathname)
	if !found {
		return DecisionDenied
	}
	if len(route.Roles) == 0 {
		return DecisionAllowed
	}
	if session.Role == "" {
		return DecisionDenied
	}

	for _, role := range route.Roles {
		if role == session.Role {
			return DecisionAllowed
		}
	}
	return DecisionDenied
}
