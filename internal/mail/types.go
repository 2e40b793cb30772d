package mail

import "time"

// Filter narrows a mailbox search.
type Filter struct {
	// Terms are searched in both subject and body; a message matching
	// any term is included.
	Terms []string

	// Since excludes messages older than this date when non-zero.
	Since time.Time

	// Limit caps how many of the most recent matches are fetched.
	Limit int
}

// headerDateLayout is the format messages are rendered to before
// handing them to the analysis core, which parses the first 25
// characters.
const headerDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// maxBodyBytes truncates fetched bodies; the heuristics only look at
// the opening of a message.
const maxBodyBytes = 500
