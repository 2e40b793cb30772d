package thread

import (
	"regexp"
	"sort"
	"strings"
)

// replyPrefix matches a single leading reply/forward marker. Stacked
// prefixes ("Re: Fwd: ...") are intentionally not stripped iteratively;
// only the first occurrence is removed.
var replyPrefix = regexp.MustCompile(`(?i)^(Re:|Fwd:)\s*`)

// NormalizeSubject strips one leading reply/forward marker and
// surrounding whitespace. The result identifies the thread a message
// belongs to.
func NormalizeSubject(subject string) string {
	return strings.TrimSpace(replyPrefix.ReplaceAllString(subject, ""))
}

// Group partitions messages into threads keyed by normalized subject.
// Each thread is sorted by date descending. Messages whose dates do not
// parse sort after all dated messages, ordered among themselves by the
// raw date string descending so placement stays deterministic.
func Group(msgs []Message) map[string]Thread {
	threads := make(map[string]Thread)
	for _, m := range msgs {
		key := NormalizeSubject(m.Subject)
		threads[key] = append(threads[key], m)
	}
	for key, t := range threads {
		SortByDate(t)
		threads[key] = t
	}
	return threads
}

// SortByDate orders messages most recent first, with the same
// unparseable-date placement Group applies within a thread.
func SortByDate(t []Message) {
	sort.SliceStable(t, func(i, j int) bool {
		ti, iOK := t[i].ParseDate()
		tj, jOK := t[j].ParseDate()
		switch {
		case iOK && jOK:
			return ti.After(tj)
		case iOK:
			return true
		case jOK:
			return false
		default:
			return t[i].Date > t[j].Date
		}
	})
}
