package agent

import (
	"fmt"
	"strings"

	"github.com/mzafir/hawk-ai-agent/internal/sheets"
	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

// prospectColumnKeywords mark the spreadsheet column naming prospects.
var prospectColumnKeywords = []string{
	"company", "prospect", "client", "customer", "name",
	"school", "district", "organization", "institution",
}

// Prospect is one tracked organization from the spreadsheet.
type Prospect struct {
	// Name is the value of the prospect column.
	Name string

	// Record is the full spreadsheet row.
	Record sheets.Record

	// Emails are contact addresses found anywhere in the row.
	Emails []string
}

// detectProspectColumn picks the column naming prospects: the first
// header containing a known keyword, else the first column.
func detectProspectColumn(columns []string) (string, bool) {
	for _, kw := range prospectColumnKeywords {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), kw) {
				return col, true
			}
		}
	}
	if len(columns) > 0 {
		return columns[0], false
	}
	return "", false
}

// prospectsFromTable extracts prospects from the worksheet. Rows with
// an empty prospect cell are skipped.
func prospectsFromTable(table sheets.Table) []Prospect {
	column, _ := detectProspectColumn(table.Columns)
	if column == "" {
		return nil
	}

	prospects := make([]Prospect, 0, len(table.Rows))
	for _, row := range table.Rows {
		name := strings.TrimSpace(row[column])
		if name == "" {
			continue
		}
		prospects = append(prospects, Prospect{
			Name:   name,
			Record: row,
			Emails: emailsFromRecord(row),
		})
	}
	return prospects
}

// emailsFromRecord collects address-shaped tokens from every cell.
func emailsFromRecord(row sheets.Record) []string {
	var emails []string
	seen := make(map[string]bool)
	for _, value := range row {
		for _, token := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ' ' || r == ',' || r == ';' || r == '\n' || r == '\t'
		}) {
			token = strings.Trim(token, "<>()\"'")
			at := strings.LastIndex(token, "@")
			if at <= 0 || at == len(token)-1 || !strings.Contains(token[at:], ".") {
				continue
			}
			lower := strings.ToLower(token)
			if !seen[lower] {
				seen[lower] = true
				emails = append(emails, lower)
			}
		}
	}
	return emails
}

// messagesForProspect filters messages to those mentioning the prospect
// by contact address or by name.
func messagesForProspect(msgs []thread.Message, p Prospect) []thread.Message {
	name := strings.ToLower(p.Name)
	var out []thread.Message
	for _, m := range msgs {
		if messageMentions(m, name, p.Emails) {
			out = append(out, m)
		}
	}
	return out
}

func messageMentions(m thread.Message, lowerName string, emails []string) bool {
	sender := strings.ToLower(m.Sender)
	for _, email := range emails {
		if strings.Contains(sender, email) {
			return true
		}
	}
	if len(lowerName) < 3 {
		return false
	}
	subject := strings.ToLower(m.Subject)
	body := strings.ToLower(m.Body)
	return strings.Contains(subject, lowerName) || strings.Contains(body, lowerName)
}

// staleForProspect filters stale threads to those tied to the prospect.
func staleForProspect(stale []thread.StaleThread, p Prospect) []thread.StaleThread {
	name := strings.ToLower(p.Name)
	var out []thread.StaleThread
	for _, st := range stale {
		if messageMentions(st.Thread.Latest(), name, p.Emails) {
			out = append(out, st)
		}
	}
	return out
}

// buildProspectPrompt assembles the inference prompt for one prospect.
func buildProspectPrompt(project string, p Prospect, msgs []thread.Message, stale []thread.StaleThread) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the communication status for prospect %q in project %q.\n\n", p.Name, project)

	b.WriteString("Tracking record:\n")
	for col, val := range p.Record {
		if val != "" {
			fmt.Fprintf(&b, "- %s: %s\n", col, val)
		}
	}

	fmt.Fprintf(&b, "\nRecent email activity (%d messages):\n", len(msgs))
	for i, m := range msgs {
		if i >= 5 {
			fmt.Fprintf(&b, "- ... and %d more\n", len(msgs)-i)
			break
		}
		fmt.Fprintf(&b, "- %s | from %s | %s\n", m.Date, m.Sender, m.Subject)
	}

	if len(stale) > 0 {
		b.WriteString("\nThreads waiting on a response:\n")
		for _, st := range stale {
			fmt.Fprintf(&b, "- %q waiting %d days on %s\n", st.Subject, st.DaysWaiting, st.WaitingOn)
		}
	}
	return b.String()
}

// buildProjectPrompt assembles the inference prompt for the overall
// project summary.
func buildProjectPrompt(project string, table sheets.Table, report *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the communication health of project %q.\n\n", project)
	fmt.Fprintf(&b, "Tracked prospects: %d\n", len(table.Rows))
	fmt.Fprintf(&b, "Messages analyzed: %d across %d threads\n", report.MessageCount, report.ThreadCount)
	fmt.Fprintf(&b, "Stale threads: %d\n", len(report.Stale))
	for _, st := range report.Stale {
		fmt.Fprintf(&b, "- %q waiting %d days, next reply owed by %s\n", st.Subject, st.DaysWaiting, st.WaitingOn)
	}
	return b.String()
}
