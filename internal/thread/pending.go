package thread

import "strings"

// DefaultIndicators are the substrings that suggest a message is
// awaiting a reply.
var DefaultIndicators = []string{
	"?", "please", "need", "request",
	"can you", "could you", "would you",
	"urgent", "approval", "confirm",
}

// Detector flags messages whose content suggests the sender is waiting
// for a response. The indicator set is configurable so callers and
// tests can override it.
type Detector struct {
	indicators []string
}

// NewDetector creates a Detector with the given indicator substrings.
// An empty set falls back to DefaultIndicators.
func NewDetector(indicators []string) *Detector {
	if len(indicators) == 0 {
		indicators = DefaultIndicators
	}
	return &Detector{indicators: indicators}
}

// Pending reports whether the message's subject or body contains any
// indicator. Matching is case-insensitive and side-effect free.
func (d *Detector) Pending(m Message) bool {
	subject := strings.ToLower(m.Subject)
	body := strings.ToLower(m.Body)
	for _, ind := range d.indicators {
		if strings.Contains(subject, ind) || strings.Contains(body, ind) {
			return true
		}
	}
	return false
}
