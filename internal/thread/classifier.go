package thread

import "strings"

// Classify determines which side of the conversation sent the message,
// based on the domain portion of the sender address. Senders without an
// "@" classify as unknown. Domain comparison is case-insensitive.
//
// The party owing the next reply is the counterpart of the returned
// label: an internal sender means the external party should respond,
// and vice versa.
func Classify(m Message, internalDomains []string) Party {
	sender := strings.TrimSpace(m.Sender)
	// Display-name forms like "Jane <jane@tusd.edu>" keep the address
	// in angle brackets.
	if start := strings.LastIndex(sender, "<"); start >= 0 {
		if end := strings.LastIndex(sender, ">"); end > start {
			sender = sender[start+1 : end]
		}
	}
	at := strings.LastIndex(sender, "@")
	if at < 0 {
		return PartyUnknown
	}
	domain := strings.ToLower(sender[at+1:])
	for _, d := range internalDomains {
		if strings.ToLower(d) == domain {
			return PartyInternal
		}
	}
	return PartyExternal
}
