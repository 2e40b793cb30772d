package query

import "strings"

// Kind classifies what a chat query is asking for.
type Kind string

const (
	KindCommunication  Kind = "communication"
	KindStatus         Kind = "status"
	KindResponsibility Kind = "responsibility"
	KindBottleneck     Kind = "bottleneck"
	KindGeneral        Kind = "general"
)

// Keyword sets checked in order; the first match wins. Bottleneck and
// responsibility are checked before communication so "who is the
// communication stuck on" routes to the more specific handler.
var routes = []struct {
	kind     Kind
	keywords []string
}{
	{KindBottleneck, []string{"stuck", "blocked", "waiting", "pending", "hung"}},
	{KindResponsibility, []string{"who", "responsible", "owner", "assigned"}},
	{KindCommunication, []string{"communication", "email", "contact", "message"}},
	{KindStatus, []string{"status", "progress", "update"}},
}

// Route determines which handler should answer a free-text query.
func Route(q string) Kind {
	lower := strings.ToLower(q)
	for _, r := range routes {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.kind
			}
		}
	}
	return KindGeneral
}
