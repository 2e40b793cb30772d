// Package agent orchestrates prospect communication analysis: it joins
// spreadsheet tracking records with mailbox traffic, flags stale
// threads, asks the inference service for narrative insight and keeps a
// conversation memory across runs.
//
// The Agent works against small interfaces (MessageSource,
// RecordSource, Analyst) so each collaborator can be absent or stubbed;
// missing sources degrade the analysis instead of failing it. Session
// adds an interactive chat layer on top, free of any terminal I/O.
package agent
