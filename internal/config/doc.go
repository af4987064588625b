// Package config loads, normalizes, and validates commitart configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// COMMITART_TOKEN. The Config type centralizes every knob the CLI needs so
// the executor, ledger, and notifier are configured in one pass.
package config
