package testsupport

import (
	"context"
	"testing"
	"time"

	"commitart/internal/config"
	"commitart/internal/ledger"
)

// MustOpenStore opens a ledger.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(cfg)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewSubmission creates a pending submission for tests using the provided store.
func NewSubmission(t testing.TB, store *ledger.Store, owner, repoName string) *ledger.Submission {
	t.Helper()

	sub, err := store.Create(context.Background(), ledger.Submission{
		Owner:     owner,
		RepoName:  repoName,
		Text:      "HI",
		Entries:   10,
		Commits:   10,
		Intensity: 1,
		Anchor:    time.Date(2025, time.May, 11, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return sub
}
