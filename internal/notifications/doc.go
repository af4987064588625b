// Package notifications delivers user-facing messages via pluggable notifiers.
//
// The ntfy implementation publishes to the topic configured in config.toml and
// degrades to a no-op when no topic is set. The console implementation prints
// toast-style lines for interactive use. Multi combines several services so
// the executor only ever talks to one Service value.
package notifications
