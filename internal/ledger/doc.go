// Package ledger records every generation submission in SQLite.
//
// A Submission row is created before the request leaves the process and is
// moved to exactly one terminal status (resolved, failed, cancelled) when the
// executor settles. Rows left pending by a crashed process are swept to
// cancelled on the next start by ResetInFlight. This is a local job history,
// not a user record store; credits and access live on the remote side.
//
// Schema changes bump schemaVersion in schema.go; users delete ledger.db to
// adopt the new schema.
package ledger
