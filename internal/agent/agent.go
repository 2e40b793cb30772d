package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mzafir/hawk-ai-agent/internal/config"
	"github.com/mzafir/hawk-ai-agent/internal/instrumentation"
	"github.com/mzafir/hawk-ai-agent/internal/llm"
	"github.com/mzafir/hawk-ai-agent/internal/logging"
	"github.com/mzafir/hawk-ai-agent/internal/mail"
	"github.com/mzafir/hawk-ai-agent/internal/memory"
	"github.com/mzafir/hawk-ai-agent/internal/sheets"
	"github.com/mzafir/hawk-ai-agent/internal/thread"
)

// MessageSource searches a mailbox for messages matching a filter.
// Implemented by mail.Client for IMAP and mail.StaticSource for tests.
type MessageSource interface {
	Search(ctx context.Context, filter mail.Filter) ([]thread.Message, error)
}

// RecordSource reads the project tracking spreadsheet. Implemented by
// sheets.Client.
type RecordSource interface {
	Worksheets(ctx context.Context) []string
	Records(ctx context.Context, worksheet string) sheets.Table
}

// Analyst generates free-form analysis text. Implemented by llm.Client.
type Analyst interface {
	Generate(ctx context.Context, prompt, contextText string) string
}

// Agent analyzes prospect communication for a project: it joins the
// tracking spreadsheet with mailbox traffic, flags threads that have
// gone stale, and asks the inference service for a narrative read.
//
// Every collaborator is optional. A missing spreadsheet yields
// mailbox-only analysis, a missing mailbox yields spreadsheet-only
// analysis, and a missing inference client degrades narrative sections
// to a fixed fallback line. At least one data source must be present.
type Agent struct {
	sheets  RecordSource
	mail    MessageSource
	llm     Analyst
	memory  *memory.Store
	metrics *instrumentation.Metrics
	logger  logging.Logger

	detector   *thread.Detector
	scanner    *thread.Scanner
	broadTerms []string

	searchSince time.Duration
	searchLimit int

	sessionID string
	now       func() time.Time
}

// Option configures an Agent.
type Option func(*Agent)

// WithSheets attaches the spreadsheet source.
func WithSheets(src RecordSource) Option {
	return func(a *Agent) { a.sheets = src }
}

// WithMail attaches the mailbox source.
func WithMail(src MessageSource) Option {
	return func(a *Agent) { a.mail = src }
}

// WithAnalyst attaches the inference client.
func WithAnalyst(an Analyst) Option {
	return func(a *Agent) { a.llm = an }
}

// WithMemory attaches the conversation memory log. A nil store is
// valid and disables memory.
func WithMemory(store *memory.Store) Option {
	return func(a *Agent) { a.memory = store }
}

// WithInstrumentation attaches the metric set. A nil Metrics records
// nothing; this is how the monitored mode differs from the plain one.
func WithInstrumentation(m *instrumentation.Metrics) Option {
	return func(a *Agent) { a.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// WithSearchWindow bounds mailbox searches: messages newer than
// sinceDays, at most limit fetched.
func WithSearchWindow(sinceDays, limit int) Option {
	return func(a *Agent) {
		if sinceDays > 0 {
			a.searchSince = time.Duration(sinceDays) * 24 * time.Hour
		}
		a.searchLimit = limit
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

// New builds an Agent with the given analysis tuning.
func New(cfg config.AnalysisConfig, opts ...Option) *Agent {
	detector := thread.NewDetector(cfg.PendingIndicators)
	a := &Agent{
		detector:   detector,
		scanner:    thread.NewScanner(detector, cfg.InternalDomains, cfg.StaleThresholdDays),
		broadTerms: cfg.BroadTerms,
		sessionID:  uuid.NewString(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.Default()
	}
	return a
}

// SessionID identifies this agent instance in logs and memory records.
func (a *Agent) SessionID() string {
	return a.sessionID
}

// Projects lists the known project names, one per spreadsheet tab.
func (a *Agent) Projects(ctx context.Context) []string {
	if a.sheets == nil {
		return nil
	}
	return a.sheets.Worksheets(ctx)
}

// AnalyzeProject runs the full analysis for one project: spreadsheet
// records, mailbox traffic, stale-thread scan, per-prospect deep dives
// and an overall narrative.
func (a *Agent) AnalyzeProject(ctx context.Context, project string) (*Report, error) {
	if a.sheets == nil && a.mail == nil {
		return nil, fmt.Errorf("no data sources configured")
	}
	logger := a.logger
	logger.Info("starting project analysis",
		logging.KeyOperation, "analyze_project",
		logging.KeyProject, project,
		logging.KeySession, a.sessionID)

	report := &Report{
		Project:     project,
		SessionID:   a.sessionID,
		GeneratedAt: a.now(),
	}

	var table sheets.Table
	if a.sheets != nil {
		table = a.sheets.Records(ctx, project)
	}
	if table.Empty() {
		report.Degraded = append(report.Degraded, "no spreadsheet records; mailbox-only analysis")
	}

	messages := a.searchMessages(ctx, project, append([]string{project}, a.broadTerms...))
	report.MessageCount = len(messages)
	a.metrics.RecordMessagesProcessed(ctx, project, len(messages))
	if a.mail == nil {
		report.Degraded = append(report.Degraded, "no mailbox configured; spreadsheet-only analysis")
	}

	threads := thread.Group(messages)
	report.ThreadCount = len(threads)
	report.Stale = a.scanner.Scan(threads, a.now())
	a.metrics.RecordStaleThreads(ctx, project, len(report.Stale))

	prospects := prospectsFromTable(table)
	for _, p := range prospects {
		analysis := a.analyzeProspect(ctx, project, p, messages, report.Stale)
		report.Prospects = append(report.Prospects, analysis)
		a.metrics.RecordProspectAnalyzed(ctx, project)
	}

	report.Summary = a.summarizeProject(ctx, project, table, report)

	logger.Info("project analysis complete",
		logging.KeyProject, project,
		"messages", report.MessageCount,
		"threads", report.ThreadCount,
		"stale", len(report.Stale),
		"prospects", len(report.Prospects))
	return report, nil
}

// searchMessages fetches mailbox traffic matching any of the terms,
// bounded by the search window. The label only tags log lines.
func (a *Agent) searchMessages(ctx context.Context, label string, terms []string) []thread.Message {
	if a.mail == nil {
		return nil
	}
	filter := mail.Filter{
		Terms: terms,
		Limit: a.searchLimit,
	}
	if a.searchSince > 0 {
		filter.Since = a.now().Add(-a.searchSince)
	}
	msgs, err := a.mail.Search(ctx, filter)
	if err != nil {
		a.logger.Warn("mailbox search failed",
			logging.KeyProject, label, logging.KeyError, err)
		return nil
	}
	return msgs
}

// analyzeProspect runs the deep dive for one prospect: its messages,
// its stale threads, memory context and an inference call.
func (a *Agent) analyzeProspect(ctx context.Context, project string, p Prospect, msgs []thread.Message, stale []thread.StaleThread) ProspectAnalysis {
	relevant := messagesForProspect(msgs, p)
	pendingStale := staleForProspect(stale, p)

	prompt := buildProspectPrompt(project, p, relevant, pendingStale)
	contextText := a.memory.ProspectContext(p.Name, 5)
	analysis := a.generate(ctx, prompt, contextText)

	if err := a.memory.Append(memory.Record{
		Kind:     memory.KindProspect,
		Prospect: p.Name,
		Project:  project,
		Prompt:   prompt,
		Response: analysis,
	}); err != nil {
		a.logger.Warn("recording prospect analysis failed",
			logging.KeyProspect, p.Name, logging.KeyError, err)
	}

	return ProspectAnalysis{
		Prospect:     p,
		MessageCount: len(relevant),
		Stale:        pendingStale,
		Analysis:     analysis,
	}
}

// summarizeProject asks the inference service for the overall read and
// records it in memory.
func (a *Agent) summarizeProject(ctx context.Context, project string, table sheets.Table, report *Report) string {
	prompt := buildProjectPrompt(project, table, report)
	contextText := a.memory.ProjectContext(project, 5)
	summary := a.generate(ctx, prompt, contextText)

	if err := a.memory.Append(memory.Record{
		Kind:     memory.KindProject,
		Project:  project,
		Prompt:   prompt,
		Response: summary,
	}); err != nil {
		a.logger.Warn("recording project analysis failed",
			logging.KeyProject, project, logging.KeyError, err)
	}
	return summary
}

// generate wraps the inference client with metrics. Without a client
// the fixed fallback line is returned, same as an unreachable service.
func (a *Agent) generate(ctx context.Context, prompt, contextText string) string {
	if a.llm == nil {
		return llm.FallbackResponse
	}
	// Wall clock, not the injectable analysis clock: the duration
	// metric measures the real call.
	start := time.Now()
	out := a.llm.Generate(ctx, prompt, contextText)

	status := instrumentation.StatusSuccess
	if out == llm.FallbackResponse {
		status = instrumentation.StatusError
	}
	tokens := llm.EstimateTokens(prompt) + llm.EstimateTokens(out)
	a.metrics.RecordInference(ctx, status, tokens, time.Since(start))
	return out
}
