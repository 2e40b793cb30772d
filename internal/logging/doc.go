// Package logging provides structured logging utilities built on the
// standard library's slog package: a small Logger interface, an slog
// adapter, and shared attribute keys so log output stays consistent
// across the codebase.
package logging
