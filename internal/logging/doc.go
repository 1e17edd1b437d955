// Package logging assembles structured slog loggers and formatting helpers
// used across cropall.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so session code can tag every line
// with the session id and the image being processed. Output written while the
// terminal UI owns the screen goes through a Deferred writer and is flushed
// once the UI exits.
package logging
