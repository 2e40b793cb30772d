package mail

import (
	"context"
	"strings"

	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

// StaticSource serves a fixed message list, applying the same term
// matching a live search would. It backs offline runs and tests.
type StaticSource struct {
	Messages []thread.Message
}

// Search filters the static messages by the filter's terms. An empty
// term list matches everything. Since and Limit behave like the live
// client: undated messages pass the Since check.
func (s *StaticSource) Search(_ context.Context, filter Filter) ([]thread.Message, error) {
	var out []thread.Message
	for _, m := range s.Messages {
		if !matchesTerms(m, filter.Terms) {
			continue
		}
		if !filter.Since.IsZero() {
			if d, ok := m.ParseDate(); ok && d.Before(filter.Since) {
				continue
			}
		}
		out = append(out, m)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func matchesTerms(m thread.Message, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	subject := strings.ToLower(m.Subject)
	body := strings.ToLower(m.Body)
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" {
			continue
		}
		if strings.Contains(subject, t) || strings.Contains(body, t) {
			return true
		}
	}
	return false
}
