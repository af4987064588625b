// Package generation is the client for the remote commit-art orchestrator.
//
// A Client validates a request locally, compiles the grid into a commit
// schedule, records a ledger submission and submits it through the
// requestexec executor inside a Session so only one generation is ever in
// flight. Status polling and access requests share the same executor.
package generation
