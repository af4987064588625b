// Package services defines shared utilities consumed by the compilers, the
// request executor, and the generation client.
//
// Key responsibilities:
//   - The failure taxonomy: sentinel markers (validation, auth, permission,
//     conflict, transient, cancelled, contract violation) plus Wrap and
//     KindOf so a failure is classified once and matched with errors.Is
//     everywhere else.
//   - Context helpers that stamp owner, operation, session, and correlation
//     identifiers for logging and tracing.
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform across the pipeline.
package services
