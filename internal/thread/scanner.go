package thread

import (
	"sort"
	"time"
)

// DefaultStaleThresholdDays is the age beyond which a pending thread
// counts as stale.
const DefaultStaleThresholdDays = 3

// Scanner finds threads that have waited too long for a reply.
// The current time is always passed in by the caller so scans are
// deterministic and testable.
type Scanner struct {
	detector        *Detector
	internalDomains []string
	thresholdDays   int
}

// NewScanner creates a Scanner. A nil detector uses the default
// indicator set; a non-positive threshold uses
// DefaultStaleThresholdDays.
func NewScanner(detector *Detector, internalDomains []string, thresholdDays int) *Scanner {
	if detector == nil {
		detector = NewDetector(nil)
	}
	if thresholdDays <= 0 {
		thresholdDays = DefaultStaleThresholdDays
	}
	return &Scanner{
		detector:        detector,
		internalDomains: internalDomains,
		thresholdDays:   thresholdDays,
	}
}

// Scan inspects each thread's most recent message and emits a
// StaleThread when it is pending a response and older than the
// threshold. Messages with unparseable dates are skipped; they count as
// neither stale nor fresh. Results sort by days waiting descending,
// ties broken by subject ascending.
func (s *Scanner) Scan(threads map[string]Thread, now time.Time) []StaleThread {
	var stale []StaleThread
	for subject, t := range threads {
		if len(t) == 0 {
			continue
		}
		latest := t.Latest()
		sent, ok := latest.ParseDate()
		if !ok {
			continue
		}
		days := int(now.Sub(sent).Hours() / 24)
		if days <= s.thresholdDays {
			continue
		}
		if !s.detector.Pending(latest) {
			continue
		}
		sender := Classify(latest, s.internalDomains)
		stale = append(stale, StaleThread{
			Subject:     subject,
			Thread:      t,
			DaysWaiting: days,
			Sender:      sender,
			WaitingOn:   sender.Counterpart(),
		})
	}
	sort.Slice(stale, func(i, j int) bool {
		if stale[i].DaysWaiting != stale[j].DaysWaiting {
			return stale[i].DaysWaiting > stale[j].DaysWaiting
		}
		return stale[i].Subject < stale[j].Subject
	})
	return stale
}
