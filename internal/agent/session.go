package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/mzafir/hawk-ai-agent/internal/llm"
	"github.com/mzafir/hawk-ai-agent/internal/logging"
	"github.com/mzafir/hawk-ai-agent/internal/memory"
	"github.com/mzafir/hawk-ai-agent/internal/query"
	"github.com/mzafir/hawk-ai-agent/internal/sheets"
	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

// CommandKind discriminates parsed chat input.
type CommandKind string

const (
	CmdHelp        CommandKind = "help"
	CmdQuit        CommandKind = "quit"
	CmdLoadProject CommandKind = "load_project"
	CmdLoadMail    CommandKind = "load_mail"
	CmdQuery       CommandKind = "query"
	CmdEmpty       CommandKind = "empty"
)

// Command is one parsed line of chat input.
type Command struct {
	Kind CommandKind
	Arg  string
}

// ParseCommand parses a chat line. Anything that is not a recognized
// command is a free-form query.
func ParseCommand(line string) Command {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Command{Kind: CmdEmpty}
	}
	lower := strings.ToLower(trimmed)
	switch lower {
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}
	case "help", "?":
		return Command{Kind: CmdHelp}
	}
	if arg, ok := strings.CutPrefix(trimmed, "load project"); ok {
		return Command{Kind: CmdLoadProject, Arg: strings.TrimSpace(arg)}
	}
	if arg, ok := strings.CutPrefix(trimmed, "load emails"); ok {
		return Command{Kind: CmdLoadMail, Arg: strings.TrimSpace(arg)}
	}
	if arg, ok := strings.CutPrefix(trimmed, "load mail"); ok {
		return Command{Kind: CmdLoadMail, Arg: strings.TrimSpace(arg)}
	}
	return Command{Kind: CmdQuery, Arg: trimmed}
}

// Response is the session's answer to one command.
type Response struct {
	Text string
	Quit bool
}

// Session holds the state of one interactive chat: the loaded project,
// its spreadsheet records and the fetched mailbox traffic. Handle is
// free of terminal I/O so the session is directly testable.
type Session struct {
	agent  *Agent
	logger logging.Logger

	project  string
	table    sheets.Table
	messages []thread.Message
	threads  map[string]thread.Thread
	stale    []thread.StaleThread
}

// NewSession starts a chat session on the agent.
func NewSession(a *Agent) *Session {
	return &Session{agent: a, logger: a.logger}
}

const helpText = `Commands:
  load project <name>   load spreadsheet records for a project
  load project          list available projects
  load emails [terms]   fetch mailbox traffic for the loaded project
  help                  show this help
  quit                  leave the chat

Anything else is treated as a question about the loaded data, e.g.
"what is stuck?", "who is responsible for TUSD?", "status update".`

// Handle executes one chat command and returns the response.
func (s *Session) Handle(ctx context.Context, cmd Command) Response {
	switch cmd.Kind {
	case CmdEmpty:
		return Response{}
	case CmdQuit:
		return Response{Text: "Goodbye.", Quit: true}
	case CmdHelp:
		return Response{Text: helpText}
	case CmdLoadProject:
		return s.loadProject(ctx, cmd.Arg)
	case CmdLoadMail:
		return s.loadMail(ctx, cmd.Arg)
	default:
		return s.answer(ctx, cmd.Arg)
	}
}

func (s *Session) loadProject(ctx context.Context, name string) Response {
	if s.agent.sheets == nil {
		return Response{Text: "No spreadsheet is configured; use \"load emails <terms>\" for mailbox-only analysis."}
	}
	if name == "" {
		projects := s.agent.Projects(ctx)
		if len(projects) == 0 {
			return Response{Text: "No projects found in the spreadsheet."}
		}
		return Response{Text: "Available projects:\n- " + strings.Join(projects, "\n- ")}
	}

	table := s.agent.sheets.Records(ctx, name)
	if table.Empty() {
		return Response{Text: fmt.Sprintf("Project %q has no records. Use \"load project\" to list projects.", name)}
	}

	s.project = name
	s.table = table
	s.logger.Info("project loaded",
		logging.KeyProject, name, "rows", len(table.Rows))
	return Response{Text: fmt.Sprintf("Loaded project %q: %d prospect rows. Now run \"load emails\" to fetch mailbox traffic.", name, len(table.Rows))}
}

func (s *Session) loadMail(ctx context.Context, extraTerms string) Response {
	if s.agent.mail == nil {
		return Response{Text: "No mailbox is configured; set the mail credentials to fetch email traffic."}
	}

	terms := strings.Fields(extraTerms)
	if s.project != "" {
		terms = append(terms, s.project)
	}
	if len(terms) == 0 {
		return Response{Text: "Load a project first or give search terms: \"load emails <terms>\"."}
	}

	msgs := s.agent.searchMessages(ctx, s.project, append(terms, s.agent.broadTerms...))
	s.messages = msgs
	s.threads = thread.Group(msgs)
	s.stale = s.agent.scanner.Scan(s.threads, s.agent.now())

	return Response{Text: fmt.Sprintf("Fetched %d messages in %d threads; %d threads look stale. Ask away.",
		len(msgs), len(s.threads), len(s.stale))}
}

// answer routes a free-form question: heuristic answers for the query
// kinds the loaded data can settle, inference for the rest.
func (s *Session) answer(ctx context.Context, q string) Response {
	kind := query.Route(q)
	entities := query.ExtractEntities(q)

	switch kind {
	case query.KindBottleneck:
		return Response{Text: s.answerBottleneck(entities)}
	case query.KindResponsibility:
		return Response{Text: s.answerResponsibility(entities)}
	case query.KindCommunication:
		return Response{Text: s.answerCommunication(entities)}
	case query.KindStatus:
		return Response{Text: s.answerStatus()}
	default:
		return Response{Text: s.answerGeneral(ctx, q)}
	}
}

func (s *Session) answerBottleneck(entities []string) string {
	if s.threads == nil {
		return "No email data loaded yet; run \"load emails\" first."
	}
	stale := filterStale(s.stale, entities)
	if len(stale) == 0 {
		return "Nothing looks stuck: no pending thread has aged past the staleness threshold."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d threads look stuck:\n", len(stale))
	for _, st := range stale {
		fmt.Fprintf(&b, "- %q: waiting %d days, next reply owed by %s\n",
			st.Subject, st.DaysWaiting, st.WaitingOn)
	}
	return b.String()
}

func (s *Session) answerResponsibility(entities []string) string {
	if s.threads == nil {
		return "No email data loaded yet; run \"load emails\" first."
	}
	stale := filterStale(s.stale, entities)
	if len(stale) == 0 {
		return "No open thread is waiting on anyone right now."
	}
	var b strings.Builder
	for _, st := range stale {
		switch st.WaitingOn {
		case thread.PartyInternal:
			fmt.Fprintf(&b, "- %q: our team owes the reply (%d days overdue)\n", st.Subject, st.DaysWaiting)
		case thread.PartyExternal:
			fmt.Fprintf(&b, "- %q: the prospect owes the reply (%d days waiting)\n", st.Subject, st.DaysWaiting)
		default:
			fmt.Fprintf(&b, "- %q: responsibility unclear, last sender %s\n", st.Subject, st.Thread.Latest().Sender)
		}
	}
	return b.String()
}

func (s *Session) answerCommunication(entities []string) string {
	if s.messages == nil {
		return "No email data loaded yet; run \"load emails\" first."
	}
	msgs := s.messages
	if len(entities) > 0 {
		msgs = filterMessages(msgs, entities)
	}
	if len(msgs) == 0 {
		return "No messages match that question."
	}
	latest := make([]thread.Message, 0, len(msgs))
	for _, t := range thread.Group(msgs) {
		latest = append(latest, t.Latest())
	}
	thread.SortByDate(latest)
	if len(latest) > 10 {
		latest = latest[:10]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d matching messages, most recent first:\n", len(msgs))
	for _, m := range latest {
		fmt.Fprintf(&b, "- %s | from %s | %s\n", m.Date, m.Sender, m.Subject)
	}
	return b.String()
}

func (s *Session) answerStatus() string {
	var b strings.Builder
	if s.project == "" {
		b.WriteString("No project loaded.\n")
	} else {
		fmt.Fprintf(&b, "Project %q: %d prospect rows loaded.\n", s.project, len(s.table.Rows))
	}
	if s.threads == nil {
		b.WriteString("No email data loaded.")
	} else {
		fmt.Fprintf(&b, "%d messages in %d threads; %d stale.", len(s.messages), len(s.threads), len(s.stale))
	}
	return b.String()
}

// answerGeneral sends the question to the inference service along with
// a digest of the loaded state and remembered history.
func (s *Session) answerGeneral(ctx context.Context, q string) string {
	var b strings.Builder
	if s.project != "" {
		fmt.Fprintf(&b, "Loaded project: %s with %d prospect rows.\n", s.project, len(s.table.Rows))
	}
	if s.threads != nil {
		fmt.Fprintf(&b, "Email state: %d messages, %d threads, %d stale.\n",
			len(s.messages), len(s.threads), len(s.stale))
	}
	if history := s.agent.memory.ProjectContext(s.project, 3); history != "" {
		b.WriteString(history)
	}

	answer := s.agent.generate(ctx, q, b.String())

	if answer != llm.FallbackResponse {
		if err := s.agent.memory.Append(memory.Record{
			Kind:     memory.KindConversation,
			Project:  s.project,
			Prompt:   q,
			Response: answer,
		}); err != nil {
			s.logger.Warn("recording conversation failed", logging.KeyError, err)
		}
	}
	return answer
}

// filterStale narrows stale threads to those mentioning any entity.
// With no entities everything passes.
func filterStale(stale []thread.StaleThread, entities []string) []thread.StaleThread {
	if len(entities) == 0 {
		return stale
	}
	var out []thread.StaleThread
	for _, st := range stale {
		if threadMentionsAny(st.Thread, entities) {
			out = append(out, st)
		}
	}
	return out
}

func filterMessages(msgs []thread.Message, entities []string) []thread.Message {
	var out []thread.Message
	for _, m := range msgs {
		if messageMentionsAny(m, entities) {
			out = append(out, m)
		}
	}
	return out
}

func threadMentionsAny(t thread.Thread, entities []string) bool {
	for _, m := range t {
		if messageMentionsAny(m, entities) {
			return true
		}
	}
	return false
}

func messageMentionsAny(m thread.Message, entities []string) bool {
	subject := strings.ToLower(m.Subject)
	body := strings.ToLower(m.Body)
	sender := strings.ToLower(m.Sender)
	for _, e := range entities {
		needle := strings.ToLower(e)
		if strings.Contains(subject, needle) || strings.Contains(body, needle) || strings.Contains(sender, needle) {
			return true
		}
	}
	return false
}
