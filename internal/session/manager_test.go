package session

import (
	"path/filepath"
	"testing"

	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

func adminIdentity() courseapi.Identity {
	return courseapi.Identity{
		ID:    "u1",
		Name:  "Amina",
		Email: "amina@example.com",
		Role:  courseapi.RoleAdmin,
	}
}

func TestManagerStartsLoading(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	m := NewManager(store, testLogger())

	if m.State() != StateLoading {
		t.Errorf("expected loading, got %v", m.State())
	}
	if m.Current() != nil {
		t.Error("expected no current session before restore")
	}
	if m.Token() != "" {
		t.Error("expected empty token before restore")
	}
}

func TestManagerRestoreEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	m := NewManager(store, testLogger())

	if err := m.Restore(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", m.State())
	}
}

func TestManagerLoginSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewManager(NewFileStore(path, testLogger()), testLogger())
	if err := first.Login("token-abc", adminIdentity()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if first.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", first.State())
	}

	// A fresh manager against the same file restores the same session,
	// simulating a process restart.
	second := NewManager(NewFileStore(path, testLogger()), testLogger())
	if err := second.Restore(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if second.State() != StateAuthenticated {
		t.Fatalf("expected authenticated after restart, got %v", second.State())
	}
	if second.Token() != "token-abc" {
		t.Errorf("expected restored token, got %q", second.Token())
	}
	if got := second.Current().User.Email; got != "amina@example.com" {
		t.Errorf("expected restored user, got %q", got)
	}
}

func TestManagerLogoutClearsDurableRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	m := NewManager(NewFileStore(path, testLogger()), testLogger())
	if err := m.Login("token-abc", adminIdentity()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", m.State())
	}
	if m.Token() != "" {
		t.Error("expected empty token after logout")
	}

	fresh := NewManager(NewFileStore(path, testLogger()), testLogger())
	if err := fresh.Restore(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if fresh.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated after restart, got %v", fresh.State())
	}
}

func TestManagerRestoreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	seed := NewManager(NewFileStore(path, testLogger()), testLogger())
	if err := seed.Login("token-abc", adminIdentity()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	m := NewManager(NewFileStore(path, testLogger()), testLogger())
	for i := 0; i < 3; i++ {
		if err := m.Restore(); err != nil {
			t.Fatalf("restore %d failed: %v", i, err)
		}
		if m.State() != StateAuthenticated {
			t.Fatalf("restore %d: expected authenticated, got %v", i, m.State())
		}
		if m.Token() != "token-abc" {
			t.Fatalf("restore %d: token changed: %q", i, m.Token())
		}
	}
}

func TestManagerIsAdmin(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	m := NewManager(store, testLogger())

	if m.IsAdmin() {
		t.Error("expected not admin with no session")
	}

	user := adminIdentity()
	user.Role = "USER"
	if err := m.Login("token-abc", user); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if m.IsAdmin() {
		t.Error("expected not admin for USER role")
	}

	if err := m.Login("token-abc", adminIdentity()); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !m.IsAdmin() {
		t.Error("expected admin for ADMIN role")
	}
}

func TestManagerCurrentReturnsCopy(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"), testLogger())
	m := NewManager(store, testLogger())

	if err := m.Login("token-abc", adminIdentity()); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	copy1 := m.Current()
	copy1.Token = "tampered"
	if m.Token() != "token-abc" {
		t.Error("mutating the returned session must not affect the manager")
	}
}
