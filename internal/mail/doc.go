// Package mail provides the agent's message source: an IMAP client
// that searches a mailbox for project-related messages and converts
// them into the analysis core's message shape, plus a static in-memory
// source for offline runs and tests.
//
// Searches are bounded by a configurable timeout and tolerate partial
// failure: a term whose search errors is skipped, a message that cannot
// be decoded is skipped, and zero results is an ordinary outcome.
package mail
