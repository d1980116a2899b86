package courseapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoginSendsCredentials(t *testing.T) {
	var receivedBody Credentials

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content-type: %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}

		if err := json.NewDecoder(r.Body).Decode(&receivedBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(LoginResult{
			Token: "jwt-token",
			User: Identity{
				ID:    "u1",
				Name:  "Admin",
				Email: "admin@example.com",
				Role:  RoleAdmin,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.Login(context.Background(), Credentials{
		Email:    "admin@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token != "jwt-token" {
		t.Errorf("expected jwt-token, got %s", result.Token)
	}
	if result.User.Role != RoleAdmin {
		t.Errorf("expected role %s, got %s", RoleAdmin, result.User.Role)
	}
	if receivedBody.Email != "admin@example.com" {
		t.Errorf("expected email to be sent, got %s", receivedBody.Email)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Category{})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(StaticToken("test-token")))

	if _, err := client.ListCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNoAuthHeaderWithEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no auth header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Category{})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTokenSource(StaticToken("")))

	if _, err := client.ListCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrAccessDenied},
		{"not found", http.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"message": "nope"})
			}))
			defer server.Close()

			client := NewClient(server.URL)

			_, err := client.GetCourse(context.Background(), "c1")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("expected errors.Is(%v), got %v", tt.sentinel, err)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Message != "nope" {
				t.Errorf("expected server message, got %q", apiErr.Message)
			}
			if apiErr.RequestID == "" {
				t.Error("expected a request ID on the error")
			}
		})
	}
}

func TestServerErrorEnvelopeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.ListCourses(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "boom" {
		t.Errorf("expected message from error field, got %q", apiErr.Message)
	}
}

func TestServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)

	_, err := client.ListCourses(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrServerUnreachable) {
		t.Errorf("expected ErrServerUnreachable, got %v", err)
	}

	var unreachable *ServerUnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("expected *ServerUnreachableError, got %T", err)
	}
	if unreachable.Cause == nil {
		t.Error("expected a transport cause")
	}
}

func TestContextCancellationWinsOverUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.ListCourses(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
	if errors.Is(err, ErrServerUnreachable) {
		t.Error("cancellation must not report as server unreachable")
	}
}

func TestResponseSchemaValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// A course without an ID or title violates the schema.
		json.NewEncoder(w).Encode(map[string]any{"description": "orphan"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.GetCourse(context.Background(), "c1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}

	var verr *ResponseValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ResponseValidationError, got %T", err)
	}
	if verr.Op != "courses.get" {
		t.Errorf("expected op courses.get, got %s", verr.Op)
	}
}

func TestListValidationReportsItemIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"_id": "c1", "name": "Programming"},
			{"description": "missing id and name"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.ListCategories(context.Background())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestInputValidation(t *testing.T) {
	// No server: validation must reject before any request is sent.
	client := NewClient("http://127.0.0.1:1")

	_, err := client.CreateCategory(context.Background(), CategoryInput{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrServerUnreachable) {
		t.Error("input validation must fail before hitting the network")
	}
}

func TestResultHook(t *testing.T) {
	var calls atomic.Int64
	var last Result

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Category{{ID: "c1", Name: "Programming"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithResultHook(func(res Result) {
		calls.Add(1)
		last = res
	}))

	if _, err := client.ListCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("expected 1 hook call, got %d", calls.Load())
	}
	if last.Op != "categories.list" {
		t.Errorf("expected op categories.list, got %s", last.Op)
	}
	if last.Method != http.MethodGet || last.Path != "/categories" {
		t.Errorf("unexpected method/path: %s %s", last.Method, last.Path)
	}
	if last.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", last.Status)
	}
	if last.RequestID == "" {
		t.Error("expected a request ID")
	}
	if last.Err != nil {
		t.Errorf("expected nil hook error, got %v", last.Err)
	}
}

func TestResultHookSeesValidationFailure(t *testing.T) {
	var last Result

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Decodes fine but violates the schema: no name.
		json.NewEncoder(w).Encode([]map[string]any{{"_id": "c1"}})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithResultHook(func(res Result) {
		last = res
	}))

	_, err := client.ListCategories(context.Background())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}

	// The hook must record the same failure the caller sees, so the
	// activity log never reports a rejected response as ok.
	if last.Err == nil {
		t.Fatal("expected hook to see the validation error")
	}
	if !errors.Is(last.Err, ErrInvalidResponse) {
		t.Errorf("expected hook error to match ErrInvalidResponse, got %v", last.Err)
	}
	if last.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", last.Status)
	}
}

func TestResultHookOnFailure(t *testing.T) {
	var last Result

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"gone"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithResultHook(func(res Result) {
		last = res
	}))

	if _, err := client.GetCategory(context.Background(), "missing"); err == nil {
		t.Fatal("expected error, got nil")
	}
	if last.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", last.Status)
	}
	if last.Err == nil {
		t.Error("expected hook to see the error")
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Category{})
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")

	if _, err := client.ListCategories(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/categories" {
		t.Errorf("expected /categories, got %s", gotPath)
	}
}
