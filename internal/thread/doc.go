// Package thread implements the communication analysis core: grouping
// email messages into conversation threads, detecting messages that
// appear to be waiting for a reply, and flagging threads that have gone
// stale past a configurable threshold.
//
// The package is deliberately free of I/O. Messages come in as plain
// values, the current time is injected into every scan, and the
// pending-response indicator set is configuration. This keeps the
// heuristics deterministic and directly testable.
//
// Example usage:
//
//	threads := thread.Group(msgs)
//	scanner := thread.NewScanner(nil, []string{"company.com"}, 3)
//	stale := scanner.Scan(threads, time.Now())
//	for _, st := range stale {
//	    fmt.Printf("%s: waiting %d days on %s\n", st.Subject, st.DaysWaiting, st.WaitingOn)
//	}
package thread
