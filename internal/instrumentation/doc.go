// Package instrumentation provides the agent's metrics pipeline:
// OpenTelemetry counters and histograms exported through Prometheus on
// a dedicated HTTP port.
//
// Monitoring is strictly optional. The Metrics type is nil-safe, so an
// agent constructed without a provider records nothing and pays no
// cost; the monitored mode is the same agent with a Metrics handed in.
package instrumentation
