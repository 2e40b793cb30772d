// Package memory persists conversation and analysis history as an
// append-only JSONL log.
//
// Records carry a version field so a future format change can coexist
// with old logs; unreadable lines are skipped on load rather than
// failing the session. A nil *Store behaves as a no-op, which lets the
// agent run with persistence disabled when the log location is
// unusable.
package memory
