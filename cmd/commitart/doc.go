// Command commitart turns short text or a hand-edited pattern into a
// contribution-graph schedule and submits it to the generation service.
//
// Pure commands (preview, schedule) never touch the network. Commands that
// reach the service share one executor, ledger and notifier built from the
// loaded configuration.
package main
