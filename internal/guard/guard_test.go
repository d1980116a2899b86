package guard

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/coursedesk/coursedesk/internal/session"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	return session.NewManager(store, testLogger())
}

func TestResolveKnownRoutes(t *testing.T) {
	if r := Resolve(PathLogin); r.Protected {
		t.Error("login must be public")
	}
	if r := Resolve(PathRegister); r.Protected {
		t.Error("register must be public")
	}
	if r := Resolve(PathCourses); !r.Protected {
		t.Error("courses must be protected")
	}
}

func TestResolveUnknownFallsBackToDashboard(t *testing.T) {
	r := Resolve("/no-such-view")
	if r.Path != PathDashboard {
		t.Errorf("expected %s, got %s", PathDashboard, r.Path)
	}
	if !r.Protected {
		t.Error("fallback route must be protected")
	}
}

func TestEvaluate(t *testing.T) {
	public := Route{Path: PathLogin, Protected: false}
	protected := Route{Path: PathCourses, Protected: true}

	tests := []struct {
		name  string
		state session.State
		route Route
		want  Decision
	}{
		{"public while loading", session.StateLoading, public, Render},
		{"public while unauthenticated", session.StateUnauthenticated, public, Render},
		{"public while authenticated", session.StateAuthenticated, public, Render},
		{"protected while loading", session.StateLoading, protected, Wait},
		{"protected while unauthenticated", session.StateUnauthenticated, protected, RedirectLogin},
		{"protected while authenticated", session.StateAuthenticated, protected, Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.state, tt.route); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAdmitWithoutSession(t *testing.T) {
	g := New(newManager(t))

	_, err := g.Admit(PathCourses)
	if !errors.Is(err, ErrLoginRequired) {
		t.Errorf("expected ErrLoginRequired, got %v", err)
	}

	// Public routes admit regardless.
	if _, err := g.Admit(PathLogin); err != nil {
		t.Errorf("login route must admit: %v", err)
	}
}

func TestAdmitWithSession(t *testing.T) {
	m := newManager(t)
	err := m.Login("token-abc", courseapi.Identity{
		ID:    "u1",
		Name:  "Amina",
		Email: "amina@example.com",
		Role:  courseapi.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	g := New(m)
	route, err := g.Admit(PathCourses)
	if err != nil {
		t.Fatalf("expected admit, got %v", err)
	}
	if route.Path != PathCourses {
		t.Errorf("expected %s, got %s", PathCourses, route.Path)
	}
}

func TestAdmitRestoresBeforeDeciding(t *testing.T) {
	// Seed a durable session, then admit with a fresh manager that has
	// not restored yet: the guard must restore instead of redirecting.
	path := filepath.Join(t.TempDir(), "session.json")

	seed := session.NewManager(session.NewFileStore(path, testLogger()), testLogger())
	err := seed.Login("token-abc", courseapi.Identity{
		ID:    "u1",
		Name:  "Amina",
		Email: "amina@example.com",
		Role:  courseapi.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	fresh := session.NewManager(session.NewFileStore(path, testLogger()), testLogger())
	if fresh.State() != session.StateLoading {
		t.Fatalf("expected loading, got %v", fresh.State())
	}

	if _, err := New(fresh).Admit(PathDashboard); err != nil {
		t.Fatalf("expected admit after restore, got %v", err)
	}
	if fresh.State() != session.StateAuthenticated {
		t.Errorf("expected authenticated after admit, got %v", fresh.State())
	}
}
