package ledger

import (
	"database/sql"
	"errors"
	"time"

	"commitart/internal/services"
)

const submissionColumns = "id, owner, repo_name, text, entries, commits, intensity, anchor, status, attempts, failure_kind, message, correlation_id, request_id, url, created_at, updated_at"

const anchorLayout = "2006-01-02"

// timestampLayout is fixed width so created_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func scanSubmission(scanner interface{ Scan(dest ...any) error }) (*Submission, error) {
	var (
		sub           Submission
		text          sql.NullString
		anchorRaw     string
		statusStr     string
		failureKind   sql.NullString
		message       sql.NullString
		correlationID sql.NullString
		requestID     sql.NullString
		url           sql.NullString
		createdRaw    sql.NullString
		updatedRaw    sql.NullString
	)

	if err := scanner.Scan(
		&sub.ID,
		&sub.Owner,
		&sub.RepoName,
		&text,
		&sub.Entries,
		&sub.Commits,
		&sub.Intensity,
		&anchorRaw,
		&statusStr,
		&sub.Attempts,
		&failureKind,
		&message,
		&correlationID,
		&requestID,
		&url,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	sub.Text = text.String
	sub.Status = Status(statusStr)
	sub.FailureKind = services.Kind(failureKind.String)
	sub.Message = message.String
	sub.CorrelationID = correlationID.String
	sub.RequestID = requestID.String
	sub.URL = url.String
	if anchor, err := time.Parse(anchorLayout, anchorRaw); err == nil {
		sub.Anchor = anchor
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		sub.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		sub.UpdatedAt = updated
	}
	return &sub, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
