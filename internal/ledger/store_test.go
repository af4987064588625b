package ledger_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"commitart/internal/ledger"
	"commitart/internal/services"
	"commitart/internal/testsupport"
)

func TestCreateAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	anchor := time.Date(2025, time.May, 11, 12, 0, 0, 0, time.UTC)
	sub, err := store.Create(ctx, ledger.Submission{
		Owner:     "octocat",
		RepoName:  "ram-contribution",
		Text:      "RAM",
		Entries:   42,
		Commits:   126,
		Intensity: 3,
		Anchor:    anchor,
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sub.ID == "" {
		t.Fatal("expected ID to be assigned")
	}
	if sub.Status != ledger.StatusPending {
		t.Fatalf("expected pending status, got %q", sub.Status)
	}
	if !sub.Anchor.Equal(time.Date(2025, time.May, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected anchor %v", sub.Anchor)
	}
	if sub.Entries != 42 || sub.Commits != 126 || sub.Intensity != 3 || sub.RequestID != "req-1" {
		t.Fatalf("unexpected submission %#v", sub)
	}
	if sub.CreatedAt.IsZero() || sub.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps")
	}

	missing, err := store.Get(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id, got %#v", missing)
	}
}

func TestCreateRequiresOwnerAndRepo(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.Create(context.Background(), ledger.Submission{RepoName: "x"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = store.Create(context.Background(), ledger.Submission{Owner: "octocat"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTerminalTransitions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	cases := []struct {
		name     string
		mark     func(id string) error
		want     ledger.Status
		wantKind services.Kind
	}{
		{
			name: "resolved",
			mark: func(id string) error {
				return store.MarkResolved(ctx, id, ledger.Outcome{Attempts: 1, URL: "https://github.com/octocat/hi-contribution"})
			},
			want: ledger.StatusResolved,
		},
		{
			name: "failed",
			mark: func(id string) error {
				return store.MarkFailed(ctx, id, ledger.Outcome{Attempts: 4, Kind: services.KindTransient, Message: "Server Error: boom", CorrelationID: "c-1"})
			},
			want:     ledger.StatusFailed,
			wantKind: services.KindTransient,
		},
		{
			name: "cancelled",
			mark: func(id string) error {
				return store.MarkCancelled(ctx, id, ledger.Outcome{Attempts: 2})
			},
			want:     ledger.StatusCancelled,
			wantKind: services.KindCancelled,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := testsupport.NewSubmission(t, store, "octocat", "hi-contribution")
			if err := tc.mark(sub.ID); err != nil {
				t.Fatalf("transition failed: %v", err)
			}
			got, err := store.Get(ctx, sub.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Status != tc.want {
				t.Fatalf("expected status %q, got %q", tc.want, got.Status)
			}
			if got.FailureKind != tc.wantKind {
				t.Fatalf("expected kind %q, got %q", tc.wantKind, got.FailureKind)
			}
			if !got.Status.IsTerminal() {
				t.Fatalf("expected terminal status, got %q", got.Status)
			}

			err = store.MarkResolved(ctx, sub.ID, ledger.Outcome{})
			if !errors.Is(err, services.ErrConflict) {
				t.Fatalf("expected conflict on second transition, got %v", err)
			}
		})
	}
}

func TestMarkUnknownSubmission(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.MarkFailed(context.Background(), "nope", ledger.Outcome{})
	if !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrdersNewestFirstAndFiltersOwner(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testsupport.NewSubmission(t, store, "octocat", "one-contribution")
	time.Sleep(2 * time.Millisecond)
	second := testsupport.NewSubmission(t, store, "octocat", "two-contribution")
	testsupport.NewSubmission(t, store, "hubot", "other-contribution")

	subs, err := store.List(ctx, "octocat", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].ID != second.ID || subs[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", subs[0].RepoName, subs[1].RepoName)
	}

	all, err := store.List(ctx, "", 1)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(all))
	}
}

func TestResetInFlightCancelsPending(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	pending := testsupport.NewSubmission(t, store, "octocat", "a-contribution")
	done := testsupport.NewSubmission(t, store, "octocat", "b-contribution")
	if err := store.MarkResolved(ctx, done.ID, ledger.Outcome{Attempts: 1}); err != nil {
		t.Fatalf("MarkResolved: %v", err)
	}

	swept, err := store.ResetInFlight(ctx, "")
	if err != nil {
		t.Fatalf("ResetInFlight: %v", err)
	}
	if swept != 1 {
		t.Fatalf("expected 1 swept row, got %d", swept)
	}

	got, _ := store.Get(ctx, pending.ID)
	if got.Status != ledger.StatusCancelled || got.Message != ledger.InterruptedReason {
		t.Fatalf("unexpected swept row %#v", got)
	}
	got, _ = store.Get(ctx, done.ID)
	if got.Status != ledger.StatusResolved {
		t.Fatalf("resolved row should be untouched, got %q", got.Status)
	}
}

func TestResetInFlightScopedToOwner(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	mine := testsupport.NewSubmission(t, store, "octocat", "a-contribution")
	theirs := testsupport.NewSubmission(t, store, "hubot", "b-contribution")

	swept, err := store.ResetInFlight(ctx, "octocat")
	if err != nil {
		t.Fatalf("ResetInFlight: %v", err)
	}
	if swept != 1 {
		t.Fatalf("expected 1 swept row, got %d", swept)
	}
	got, _ := store.Get(ctx, mine.ID)
	if got.Status != ledger.StatusCancelled {
		t.Fatalf("own row should be cancelled, got %q", got.Status)
	}
	got, _ = store.Get(ctx, theirs.ID)
	if got.Status != ledger.StatusPending {
		t.Fatalf("other owner's row should stay pending, got %q", got.Status)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	path := store.Path()
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	_, err = ledger.Open(cfg)
	if !errors.Is(err, ledger.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
