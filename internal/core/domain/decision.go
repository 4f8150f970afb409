package domain

// Decision is the outcome of a route-guard evaluation. It is computed fresh
// per navigation attempt and never persisted.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow permits the navigation to proceed.
func Allow() Decision {
	return Decision{Allowed: true}
}

// DenyRedirect cancels the navigation and sends the caller to route instead.
func DenyRedirect(route string) Decision {
	return Decision{Allowed: false, RedirectTo: route}
}
