package thread

import (
	"strings"
	"time"
)

// dateLayout matches the header format produced by most mailers,
// e.g. "Mon, 02 Jan 2006 15:04:05". Timezone suffixes are ignored by
// truncating to the first 25 characters before parsing.
const dateLayout = "Mon, 02 Jan 2006 15:04:05"

// Message is a single email message as seen by the analysis core.
// Date keeps the raw header string; use ParseDate to interpret it.
type Message struct {
	Subject string
	Sender  string
	Date    string
	Body    string
}

// ParseDate interprets the message's raw date header. The boolean is
// false when the date cannot be parsed; such messages are treated as
// having unknown recency rather than being errors.
func (m Message) ParseDate() (time.Time, bool) {
	s := strings.TrimSpace(m.Date)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Thread is a non-empty sequence of messages sharing a normalized
// subject, ordered most recent first.
type Thread []Message

// Latest returns the most recent message of the thread.
func (t Thread) Latest() Message {
	return t[0]
}

// Party identifies which side of a conversation a sender belongs to.
type Party string

const (
	PartyInternal Party = "INTERNAL_TEAM"
	PartyExternal Party = "EXTERNAL_PARTY"
	PartyUnknown  Party = "UNKNOWN"
)

// Counterpart returns the opposite side. The counterpart of an unknown
// party is unknown.
func (p Party) Counterpart() Party {
	switch p {
	case PartyInternal:
		return PartyExternal
	case PartyExternal:
		return PartyInternal
	default:
		return PartyUnknown
	}
}

// StaleThread is a thread whose most recent message appears to need a
// response and has aged past the staleness threshold.
type StaleThread struct {
	// Subject is the normalized subject identifying the thread.
	Subject string

	// Thread holds the full message sequence, most recent first.
	Thread Thread

	// DaysWaiting is the floor of elapsed days since the most recent
	// message.
	DaysWaiting int

	// Sender classifies the most recent message's sender.
	Sender Party

	// WaitingOn is the party that owes the next reply: the counterpart
	// of the most recent sender.
	WaitingOn Party
}
