package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

// ProspectAnalysis is the per-prospect section of a report.
type ProspectAnalysis struct {
	Prospect     Prospect
	MessageCount int
	Stale        []thread.StaleThread
	Analysis     string
}

// Report is the outcome of one project analysis run.
type Report struct {
	Project     string
	SessionID   string
	GeneratedAt time.Time

	MessageCount int
	ThreadCount  int
	Stale        []thread.StaleThread
	Prospects    []ProspectAnalysis

	// Summary is the inference service's overall narrative.
	Summary string

	// Degraded lists data sources that were unavailable for this run.
	Degraded []string
}

// Render formats the report as plain text for terminal output.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %s\n", r.Project)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Messages: %d across %d threads\n", r.MessageCount, r.ThreadCount)

	for _, note := range r.Degraded {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}

	b.WriteString("\n== Stale threads ==\n")
	if len(r.Stale) == 0 {
		b.WriteString("No threads are waiting on a response.\n")
	}
	for _, st := range r.Stale {
		fmt.Fprintf(&b, "- %q: waiting %d days, next reply owed by %s (last sender: %s)\n",
			st.Subject, st.DaysWaiting, st.WaitingOn, st.Sender)
	}

	if len(r.Prospects) > 0 {
		b.WriteString("\n== Prospects ==\n")
		for _, p := range r.Prospects {
			fmt.Fprintf(&b, "\n%s (%d messages, %d stale threads)\n",
				p.Prospect.Name, p.MessageCount, len(p.Stale))
			b.WriteString(indent(p.Analysis))
		}
	}

	if r.Summary != "" {
		b.WriteString("\n== Summary ==\n")
		b.WriteString(r.Summary)
		b.WriteString("\n")
	}
	return b.String()
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
