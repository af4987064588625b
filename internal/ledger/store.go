package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"commitart/internal/services"
)

const defaultListLimit = 20

// ErrNotFound is returned when a submission ID is unknown.
var ErrNotFound = errors.New("submission not found")

// Create inserts a pending submission. ID and timestamps are assigned here.
func (s *Store) Create(ctx context.Context, sub Submission) (*Submission, error) {
	if strings.TrimSpace(sub.Owner) == "" {
		return nil, services.Wrap(services.ErrValidation, "ledger", "create", "owner is required", nil)
	}
	if strings.TrimSpace(sub.RepoName) == "" {
		return nil, services.Wrap(services.ErrValidation, "ledger", "create", "repo name is required", nil)
	}

	timestamp := formatTimestamp(time.Now())
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	_, err := s.exec(
		ctx,
		`INSERT INTO submissions (
            id, owner, repo_name, text, entries, commits, intensity, anchor,
            status, attempts, request_id, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		sub.ID,
		sub.Owner,
		sub.RepoName,
		nullableString(sub.Text),
		sub.Entries,
		sub.Commits,
		sub.Intensity,
		sub.Anchor.UTC().Format(anchorLayout),
		StatusPending,
		nullableString(sub.RequestID),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return s.Get(ctx, sub.ID)
}

// MarkResolved moves a pending submission to resolved.
func (s *Store) MarkResolved(ctx context.Context, id string, out Outcome) error {
	return s.transition(ctx, id, StatusResolved, out)
}

// MarkFailed moves a pending submission to failed with the classified failure.
func (s *Store) MarkFailed(ctx context.Context, id string, out Outcome) error {
	if out.Kind == services.KindNone {
		out.Kind = services.KindTransient
	}
	return s.transition(ctx, id, StatusFailed, out)
}

// MarkCancelled moves a pending submission to cancelled.
func (s *Store) MarkCancelled(ctx context.Context, id string, out Outcome) error {
	out.Kind = services.KindCancelled
	return s.transition(ctx, id, StatusCancelled, out)
}

func (s *Store) transition(ctx context.Context, id string, to Status, out Outcome) error {
	res, err := s.exec(
		ctx,
		`UPDATE submissions
            SET status = ?, attempts = ?, failure_kind = ?, message = ?,
                correlation_id = ?, request_id = COALESCE(?, request_id), url = ?, updated_at = ?
          WHERE id = ? AND status = ?`,
		to,
		out.Attempts,
		nullableString(string(out.Kind)),
		nullableString(out.Message),
		nullableString(out.CorrelationID),
		nullableString(out.RequestID),
		nullableString(out.URL),
		formatTimestamp(time.Now()),
		id,
		StatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark %s: %w", to, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark %s: rows affected: %w", to, err)
	}
	if affected == 1 {
		return nil
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return services.Wrap(services.ErrValidation, "ledger", "mark "+string(to), id, ErrNotFound)
	}
	return services.Wrap(services.ErrConflict, "ledger", "mark "+string(to),
		fmt.Sprintf("submission %s is already %s", id, current.Status), nil)
}

// Get fetches a submission by ID. It returns nil, nil when the ID is unknown.
func (s *Store) Get(ctx context.Context, id string) (*Submission, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

// List returns the newest submissions first. An empty owner lists every owner.
func (s *Store) List(ctx context.Context, owner string, limit int) ([]*Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := `SELECT ` + submissionColumns + ` FROM submissions`
	args := []any{}
	if owner = strings.TrimSpace(owner); owner != "" {
		query += ` WHERE owner = ?`
		args = append(args, owner)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

// ResetInFlight marks submissions left pending by an earlier process as
// cancelled and returns how many rows were swept. A non-empty owner limits the
// sweep to that owner's rows.
func (s *Store) ResetInFlight(ctx context.Context, owner string) (int64, error) {
	query := `UPDATE submissions SET status = ?, failure_kind = ?, message = ?, updated_at = ? WHERE status = ?`
	args := []any{
		StatusCancelled,
		services.KindCancelled,
		InterruptedReason,
		formatTimestamp(time.Now()),
		StatusPending,
	}
	if owner = strings.TrimSpace(owner); owner != "" {
		query += ` AND owner = ?`
		args = append(args, owner)
	}
	res, err := s.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset in-flight submissions: %w", err)
	}
	return res.RowsAffected()
}
