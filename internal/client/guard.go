package client

import "github.com/mdouchement/paperflow/pkg/libpf"

// A Decision is the outcome of a route authorization check.
type Decision int

const (
	// DecisionPending means the store has not rehydrated yet; render a
	// loading state and take no navigation action.
	DecisionPending Decision = iota
	// DecisionRedirect means there is no session; go to the anonymous landing page.
	DecisionRedirect
	// DecisionDenied means the session exists but its role does not match.
	// No redirect happens, that would loop between sibling role pages.
	DecisionDenied
	// DecisionAllow means the view can render.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionRedirect:
		return "redirect"
	case DecisionDenied:
		return "denied"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// AnonymousLanding is the target of a redirect decision.
const AnonymousLanding = "/"

// A Guard gates access to role-specific views by reading the session store.
type Guard struct {
	store *Store
}

// NewGuard returns a Guard reading the given store.
func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// Authorize decides whether a view gated by the required role is reachable.
// An empty required role only requires a session.
func (g *Guard) Authorize(required libpf.Role) Decision {
	return Authorize(g.store.Ready(), g.store.Current(), required)
}

// Authorize is the pure decision core, free of storage and network.
func Authorize(ready bool, session libpf.Session, required libpf.Role) Decision {
	if !ready {
		return DecisionPending
	}
	if !session.Defined() {
		return DecisionRedirect
	}
	if required == "" {
		return DecisionAllow
	}

	// The role set is closed; an unknown requirement fails closed.
	switch required {
	case libpf.RoleAdmin, libpf.RoleReviewer, libpf.RoleAuthor:
		if session.Role == required {
			return DecisionAllow
		}
	}
	return DecisionDenied
}
