// Package guard gates protected views behind the session state. The
// decision is pure and local: no network round trip is involved.
package guard

import (
	"errors"

	"github.com/coursedesk/coursedesk/internal/session"
)

// ErrLoginRequired is returned when a protected route is requested
// without an authenticated session.
var ErrLoginRequired = errors.New("login required")

// Paths of the navigation surface. The public zone is login and
// register; everything else requires a session.
const (
	PathLogin        = "/login"
	PathRegister     = "/register"
	PathDashboard    = "/dashboard"
	PathCourses      = "/courses"
	PathCategories   = "/categories"
	PathModules      = "/modules"
	PathVideos       = "/videos"
	PathProducts     = "/products"
	PathUsers        = "/users"
	PathRecentOrders = "/recent-orders"
	PathEnrollments  = "/enrollments"
	PathSettings     = "/settings"
)

// Route is one navigable view.
type Route struct {
	Path      string
	Protected bool
}

// routes is the full navigation surface.
var routes = []Route{
	{Path: PathLogin, Protected: false},
	{Path: PathRegister, Protected: false},
	{Path: PathDashboard, Protected: true},
	{Path: PathCourses, Protected: true},
	{Path: PathCategories, Protected: true},
	{Path: PathModules, Protected: true},
	{Path: PathVideos, Protected: true},
	{Path: PathProducts, Protected: true},
	{Path: PathUsers, Protected: true},
	{Path: PathRecentOrders, Protected: true},
	{Path: PathEnrollments, Protected: true},
	{Path: PathSettings, Protected: true},
}

// Resolve maps a requested path to a route. Unknown and index paths
// resolve to the default protected view (the dashboard), which the
// guard then re-evaluates.
func Resolve(path string) Route {
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return Route{Path: PathDashboard, Protected: true}
}

// Decision is the outcome of evaluating a route against the session.
type Decision int

const (
	// Render means the view may be shown.
	Render Decision = iota

	// RedirectLogin means the view is protected and no session exists.
	RedirectLogin

	// Wait means the session is still restoring. Rendering is
	// suppressed so unauthenticated content never flashes.
	Wait
)

// Evaluate decides whether a route may render for the given session
// state. The decision is driven solely by the session's presence:
// there is no per-route role matrix beyond the single admin tier the
// login flow enforces.
func Evaluate(st session.State, r Route) Decision {
	if !r.Protected {
		return Render
	}
	switch st {
	case session.StateLoading:
		return Wait
	case session.StateAuthenticated:
		return Render
	default:
		return RedirectLogin
	}
}

// Guard composes the session manager with the route table.
type Guard struct {
	sessions *session.Manager
}

// New creates a Guard over the given session manager.
func New(sessions *session.Manager) *Guard {
	return &Guard{sessions: sessions}
}

// Admit resolves the path and evaluates it against the current session,
// restoring the session first if it has not been loaded yet. It returns
// the resolved route on success and ErrLoginRequired when the route is
// protected and no session exists.
func (g *Guard) Admit(path string) (Route, error) {
	route := Resolve(path)

	if g.sessions.State() == session.StateLoading {
		if err := g.sessions.Restore(); err != nil {
			return route, err
		}
	}

	switch Evaluate(g.sessions.State(), route) {
	case Render:
		return route, nil
	default:
		return route, ErrLoginRequired
	}
}
