// Package session owns the local admin session: who is logged in, the
// bearer credential, and the durable record that survives process
// restarts.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

// State is the explicit session lifecycle state. There is no implicit
// "user is nil" convention: callers branch on State.
type State int

const (
	// StateLoading means the durable record has not been read yet.
	// Nothing protected may render in this state.
	StateLoading State = iota

	// StateUnauthenticated means no session exists.
	StateUnauthenticated

	// StateAuthenticated means a user and token are present.
	StateAuthenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the authenticated identity and credential held by the
// running client. The token is opaque: it is attached to requests
// verbatim and never validated locally. Staleness is discovered lazily
// when the server rejects it.
type Session struct {
	Token     string             `json:"token"`
	User      courseapi.Identity `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
}

// IsAdmin reports whether the session's user holds the admin role.
// The application has exactly one authorization tier: non-admin
// sessions are equivalent to no session.
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == courseapi.RoleAdmin
}

// valid reports whether the session carries both a token and a user.
// A record missing either is treated as no session.
func (s *Session) valid() bool {
	return s != nil && s.Token != "" && s.User.Email != ""
}

// TokenExpiry peeks at the token's exp claim without verifying the
// signature. Display only: the result never gates any request or
// route decision. Returns false for non-JWT or claim-less tokens.
func (s *Session) TokenExpiry() (time.Time, bool) {
	if s == nil || s.Token == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
