package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coursedesk/coursedesk/internal/session"
	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

// setupLogin wires the package state runLogin depends on against a
// fake auth endpoint returning the given role.
func setupLogin(t *testing.T, role string) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(courseapi.LoginResult{
			Token: "token-abc",
			User: courseapi.Identity{
				ID:    "u1",
				Name:  "Amina",
				Email: "amina@example.com",
				Role:  role,
			},
		})
	}))
	t.Cleanup(server.Close)

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), logger)
	sessions = session.NewManager(store, logger)
	if err := sessions.Restore(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	client = courseapi.NewClient(server.URL, courseapi.WithTokenSource(sessions))

	loginEmail = "amina@example.com"
	loginPassword = "secret"
	loginCmd.SetContext(context.Background())
	loginCmd.SetOut(io.Discard)
	loginCmd.SetErr(io.Discard)
}

func TestLoginAdminPopulatesSession(t *testing.T) {
	setupLogin(t, courseapi.RoleAdmin)

	if err := runLogin(loginCmd, nil); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if sessions.State() != session.StateAuthenticated {
		t.Errorf("expected authenticated, got %v", sessions.State())
	}
	if sessions.Token() != "token-abc" {
		t.Errorf("expected session token, got %q", sessions.Token())
	}
}

func TestLoginNonAdminRejected(t *testing.T) {
	setupLogin(t, "USER")

	err := runLogin(loginCmd, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "admin only") {
		t.Errorf("expected admin-only rejection, got %v", err)
	}

	// Valid credentials without the admin role never populate the
	// session.
	if sessions.State() == session.StateAuthenticated {
		t.Error("non-admin login must not authenticate the session")
	}
	if sessions.Token() != "" {
		t.Errorf("expected no stored token, got %q", sessions.Token())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Invalid credentials"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), logger)
	sessions = session.NewManager(store, logger)
	client = courseapi.NewClient(server.URL)
	loginEmail = "amina@example.com"
	loginPassword = "wrong"
	loginCmd.SetContext(context.Background())

	err := runLogin(loginCmd, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "invalid email or password" {
		t.Errorf("unexpected message: %v", err)
	}
}
