package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrStatus  = "status"
	attrProject = "project"
)

// Status values for metric labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics records the agent's operational counters: inference usage,
// messages processed, prospects analyzed and stale threads found.
// All methods are nil-safe so uninstrumented runs cost nothing.
type Metrics struct {
	inferenceCallsTotal  metric.Int64Counter
	inferenceTokensTotal metric.Int64Counter
	inferenceDuration    metric.Float64Histogram
	messagesProcessed    metric.Int64Counter
	prospectsAnalyzed    metric.Int64Counter
	staleThreadsFound    metric.Int64Counter
}

// NewMetrics creates the agent metric set on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.inferenceCallsTotal, err = meter.Int64Counter(
		"hawk_inference_calls_total",
		metric.WithDescription("Total number of inference service calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create hawk_inference_calls_total counter: %w", err)
	}

	m.inferenceTokensTotal, err = meter.Int64Counter(
		"hawk_inference_tokens_total",
		metric.WithDescription("Estimated tokens exchanged with the inference service"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create hawk_inference_tokens_total counter: %w", err)
	}

	m.inferenceDuration, err = meter.Float64Histogram(
		"hawk_inference_duration_seconds",
		metric.WithDescription("Inference call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("create hawk_inference_duration_seconds histogram: %w", err)
	}

	m.messagesProcessed, err = meter.Int64Counter(
		"hawk_messages_processed_total",
		metric.WithDescription("Total number of mailbox messages processed"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create hawk_messages_processed_total counter: %w", err)
	}

	m.prospectsAnalyzed, err = meter.Int64Counter(
		"hawk_prospects_analyzed_total",
		metric.WithDescription("Total number of prospects analyzed"),
		metric.WithUnit("{prospect}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create hawk_prospects_analyzed_total counter: %w", err)
	}

	m.staleThreadsFound, err = meter.Int64Counter(
		"hawk_stale_threads_total",
		metric.WithDescription("Total number of stale threads flagged"),
		metric.WithUnit("{thread}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create hawk_stale_threads_total counter: %w", err)
	}

	return m, nil
}

// RecordInference records one inference call with its outcome, token
// estimate and duration.
func (m *Metrics) RecordInference(ctx context.Context, status string, tokens int, duration time.Duration) {
	if m == nil || m.inferenceCallsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(attrStatus, status))
	m.inferenceCallsTotal.Add(ctx, 1, attrs)
	m.inferenceTokensTotal.Add(ctx, int64(tokens), attrs)
	m.inferenceDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordMessagesProcessed counts mailbox messages fed to an analysis
// run for the given project.
func (m *Metrics) RecordMessagesProcessed(ctx context.Context, project string, count int) {
	if m == nil || m.messagesProcessed == nil {
		return
	}
	m.messagesProcessed.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String(attrProject, project)))
}

// RecordProspectAnalyzed counts one completed prospect deep dive.
func (m *Metrics) RecordProspectAnalyzed(ctx context.Context, project string) {
	if m == nil || m.prospectsAnalyzed == nil {
		return
	}
	m.prospectsAnalyzed.Add(ctx, 1,
		metric.WithAttributes(attribute.String(attrProject, project)))
}

// RecordStaleThreads counts stale threads flagged by a scan.
func (m *Metrics) RecordStaleThreads(ctx context.Context, project string, count int) {
	if m == nil || m.staleThreadsFound == nil {
		return
	}
	m.staleThreadsFound.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String(attrProject, project)))
}
