// Package requestexec executes outbound calls to the generation endpoint with
// a per-attempt timeout, exponential backoff with jitter, one-shot failure
// classification, user notification, and cooperative cancellation.
//
// A Descriptor carries the per-call state (operation, payload, retry counter,
// policy) and is mutated in place across attempts. The context passed to
// Execute is the cancellation token; it is checked before every dispatch and
// during every backoff sleep. Session enforces at most one generation-class
// request in flight by cancelling the predecessor when a new one begins.
package requestexec
