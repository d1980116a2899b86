// Package screen implements the list view shared by every resource:
// fetch the full list on open, narrow it with a client-side filter,
// refetch after create/update, and remove deleted rows locally.
package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Errors returned by screen operations.
var (
	// ErrBusy is returned when a submit is already in flight. Re-entrant
	// submission is prevented here the way the form layer disabled its
	// submit button.
	ErrBusy = errors.New("operation already in progress")

	// ErrNotConfirmed is returned when a delete is attempted without
	// explicit confirmation.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// Screen holds the view state for one resource list. Each screen owns
// its rows independently; there is no cross-screen shared state.
type Screen[T any] struct {
	fetch   func(ctx context.Context) ([]T, error)
	rowID   func(T) string
	display func(T) string

	mu      sync.Mutex
	rows    []T
	loaded  bool
	loading bool
	busy    bool
	query   string
}

// New creates a screen. fetch loads the full list, rowID extracts a
// row's identifier, and display extracts the field the filter matches
// against.
func New[T any](fetch func(ctx context.Context) ([]T, error), rowID func(T) string, display func(T) string) *Screen[T] {
	return &Screen[T]{
		fetch:   fetch,
		rowID:   rowID,
		display: display,
	}
}

// Open fetches the full list. Call once when the view opens. On error
// the screen keeps whatever rows it already had.
func (s *Screen[T]) Open(ctx context.Context) error {
	return s.refresh(ctx)
}

// refresh refetches the list, replacing local rows only on success.
func (s *Screen[T]) refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	rows, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}
	s.rows = rows
	s.loaded = true
	return nil
}

// SetFilter sets the substring filter. Filtering is case-insensitive,
// applies on render, and never refetches.
func (s *Screen[T]) SetFilter(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
}

// Visible returns the rows matching the current filter.
func (s *Screen[T]) Visible() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.query == "" {
		out := make([]T, len(s.rows))
		copy(out, s.rows)
		return out
	}

	needle := strings.ToLower(s.query)
	var out []T
	for _, row := range s.rows {
		if strings.Contains(strings.ToLower(s.display(row)), needle) {
			out = append(out, row)
		}
	}
	return out
}

// Submit runs a create or update mutation, then refetches the full
// list. Only one submit may be in flight at a time; concurrent calls
// fail with ErrBusy. On mutation failure the list is left unchanged
// and no refetch happens.
func (s *Screen[T]) Submit(ctx context.Context, mutate func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if err := mutate(ctx); err != nil {
		return err
	}
	return s.refresh(ctx)
}

// Delete deletes the row with the given id. The caller must have
// obtained explicit confirmation. On success the row is removed from
// local state directly; the list is not refetched.
func (s *Screen[T]) Delete(ctx context.Context, id string, confirmed bool, del func(ctx context.Context, id string) error) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if err := del(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0:0]
	for _, row := range s.rows {
		if s.rowID(row) != id {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

// Find returns the loaded row with the given id.
func (s *Screen[T]) Find(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if s.rowID(row) == id {
			return row, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no row with id %q", id)
}

// Loading reports whether a fetch is in flight. This is the only
// loading indication the view has: there is no per-row state.
func (s *Screen[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Loaded reports whether the initial fetch has completed, so an empty
// list can be told apart from a list that never loaded.
func (s *Screen[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}
