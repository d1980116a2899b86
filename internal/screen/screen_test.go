package screen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

type course struct {
	ID    string
	Title string
}

func newCourseScreen(fetch func(ctx context.Context) ([]course, error)) *Screen[course] {
	return New(
		fetch,
		func(c course) string { return c.ID },
		func(c course) string { return c.Title },
	)
}

func staticFetch(rows []course, calls *atomic.Int64) func(ctx context.Context) ([]course, error) {
	return func(ctx context.Context) ([]course, error) {
		if calls != nil {
			calls.Add(1)
		}
		out := make([]course, len(rows))
		copy(out, rows)
		return out, nil
	}
}

func TestOpenLoadsRows(t *testing.T) {
	var fetches atomic.Int64
	sc := newCourseScreen(staticFetch([]course{{ID: "c1", Title: "Go"}}, &fetches))

	if sc.Loaded() {
		t.Error("expected not loaded before open")
	}
	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !sc.Loaded() {
		t.Error("expected loaded after open")
	}
	if got := sc.Visible(); len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("unexpected rows: %+v", got)
	}
	if fetches.Load() != 1 {
		t.Errorf("expected 1 fetch, got %d", fetches.Load())
	}
}

func TestOpenErrorKeepsRows(t *testing.T) {
	fail := false
	sc := newCourseScreen(func(ctx context.Context) ([]course, error) {
		if fail {
			return nil, errors.New("server down")
		}
		return []course{{ID: "c1", Title: "Go"}}, nil
	})

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	fail = true
	if err := sc.Open(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := sc.Visible(); len(got) != 1 {
		t.Errorf("rows must survive a failed refresh, got %+v", got)
	}
}

func TestFilterIsLocalAndCaseInsensitive(t *testing.T) {
	var fetches atomic.Int64
	sc := newCourseScreen(staticFetch([]course{
		{ID: "c1", Title: "JavaScript Basics"},
		{ID: "c2", Title: "Python 101"},
		{ID: "c3", Title: "Advanced Java"},
	}, &fetches))

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	sc.SetFilter("java")
	got := sc.Visible()
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	if got[0].Title != "JavaScript Basics" || got[1].Title != "Advanced Java" {
		t.Errorf("unexpected matches: %+v", got)
	}

	// Filtering never refetches.
	if fetches.Load() != 1 {
		t.Errorf("expected 1 fetch, got %d", fetches.Load())
	}

	sc.SetFilter("")
	if got := sc.Visible(); len(got) != 3 {
		t.Errorf("expected all rows after clearing filter, got %d", len(got))
	}
}

func TestSubmitMutatesThenRefetches(t *testing.T) {
	var fetches, mutations atomic.Int64
	rows := []course{{ID: "c1", Title: "Go"}}

	sc := newCourseScreen(func(ctx context.Context) ([]course, error) {
		fetches.Add(1)
		out := make([]course, len(rows))
		copy(out, rows)
		return out, nil
	})

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	err := sc.Submit(context.Background(), func(ctx context.Context) error {
		mutations.Add(1)
		rows = append(rows, course{ID: "c2", Title: "Web Dev"})
		return nil
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if mutations.Load() != 1 {
		t.Errorf("expected 1 mutation, got %d", mutations.Load())
	}
	// Open plus exactly one post-submit refetch.
	if fetches.Load() != 2 {
		t.Errorf("expected 2 fetches, got %d", fetches.Load())
	}
	if got := sc.Visible(); len(got) != 2 {
		t.Errorf("expected the new row to appear, got %+v", got)
	}
}

func TestSubmitErrorSkipsRefetch(t *testing.T) {
	var fetches atomic.Int64
	sc := newCourseScreen(staticFetch([]course{{ID: "c1", Title: "Go"}}, &fetches))

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	wantErr := errors.New("validation failed")
	err := sc.Submit(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected mutation error, got %v", err)
	}
	if fetches.Load() != 1 {
		t.Errorf("failed submit must not refetch, got %d fetches", fetches.Load())
	}
}

func TestSubmitRejectsConcurrent(t *testing.T) {
	sc := newCourseScreen(staticFetch(nil, nil))

	inMutate := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = sc.Submit(context.Background(), func(ctx context.Context) error {
			close(inMutate)
			<-release
			return nil
		})
	}()

	<-inMutate
	err := sc.Submit(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	close(release)
	wg.Wait()

	// The guard releases once the first submit completes.
	if err := sc.Submit(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Errorf("expected submit to succeed after drain: %v", err)
	}
}

func TestDeleteRemovesLocallyWithoutRefetch(t *testing.T) {
	var fetches, deletes atomic.Int64
	sc := newCourseScreen(staticFetch([]course{
		{ID: "abc123", Title: "Go"},
		{ID: "def456", Title: "Python"},
	}, &fetches))

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	err := sc.Delete(context.Background(), "abc123", true, func(ctx context.Context, id string) error {
		deletes.Add(1)
		if id != "abc123" {
			t.Errorf("expected id abc123, got %s", id)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if deletes.Load() != 1 {
		t.Errorf("expected 1 delete call, got %d", deletes.Load())
	}
	if fetches.Load() != 1 {
		t.Errorf("delete must not refetch, got %d fetches", fetches.Load())
	}

	got := sc.Visible()
	if len(got) != 1 || got[0].ID != "def456" {
		t.Errorf("expected only def456 to remain, got %+v", got)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	var deletes atomic.Int64
	sc := newCourseScreen(staticFetch([]course{{ID: "c1", Title: "Go"}}, nil))

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	err := sc.Delete(context.Background(), "c1", false, func(ctx context.Context, id string) error {
		deletes.Add(1)
		return nil
	})
	if !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("expected ErrNotConfirmed, got %v", err)
	}
	if deletes.Load() != 0 {
		t.Error("unconfirmed delete must not call the server")
	}
	if got := sc.Visible(); len(got) != 1 {
		t.Errorf("unconfirmed delete must not touch rows, got %+v", got)
	}
}

func TestDeleteErrorKeepsRows(t *testing.T) {
	sc := newCourseScreen(staticFetch([]course{{ID: "c1", Title: "Go"}}, nil))

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	err := sc.Delete(context.Background(), "c1", true, func(ctx context.Context, id string) error {
		return errors.New("conflict")
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := sc.Visible(); len(got) != 1 {
		t.Errorf("failed delete must keep rows, got %+v", got)
	}
}

func TestFind(t *testing.T) {
	sc := newCourseScreen(staticFetch([]course{{ID: "c1", Title: "Go"}}, nil))

	if err := sc.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	row, err := sc.Find("c1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if row.Title != "Go" {
		t.Errorf("unexpected row: %+v", row)
	}

	if _, err := sc.Find("missing"); err == nil {
		t.Error("expected error for unknown id")
	}
}
