package cmd

import (
	"context"
	"fmt"

	"github.com/mzafir/hawk-ai-agent/internal/agent"
	"github.com/mzafir/hawk-ai-agent/internal/config"
	"github.com/mzafir/hawk-ai-agent/internal/instrumentation"
	"github.com/mzafir/hawk-ai-agent/internal/llm"
	"github.com/mzafir/hawk-ai-agent/internal/logging"
	"github.com/mzafir/hawk-ai-agent/internal/mail"
	"github.com/mzafir/hawk-ai-agent/internal/memory"
	"github.com/mzafir/hawk-ai-agent/internal/sheets"
)

// runtime bundles everything a command needs to run the agent.
type runtime struct {
	agent    *agent.Agent
	logger   logging.Logger
	provider *instrumentation.Provider
	metrics  *instrumentation.MetricsServer
}

// buildRuntime loads configuration and assembles the agent. Missing
// collaborators are logged and skipped so a partially configured setup
// still runs in degraded mode; only a fully empty setup is an error.
func buildRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := logging.NewSlogAdapter(logging.Setup(logLevel))
	rt := &runtime{logger: logger}

	opts := []agent.Option{
		agent.WithLogger(logger),
		agent.WithSearchWindow(cfg.Mail.SinceDays, cfg.Mail.Limit),
	}

	if err := cfg.ValidateSheets(); err != nil {
		logger.Warn("spreadsheet unavailable", logging.KeyError, err)
	} else {
		client, err := sheets.NewClient(ctx, cfg.Sheets, logger)
		if err != nil {
			logger.Warn("spreadsheet client failed", logging.KeyError, err)
		} else {
			opts = append(opts, agent.WithSheets(client))
		}
	}

	if err := cfg.ValidateMail(); err != nil {
		logger.Warn("mailbox unavailable", logging.KeyError, err)
	} else {
		client, err := mail.NewClient(cfg.Mail, logger)
		if err != nil {
			logger.Warn("mailbox client failed", logging.KeyError, err)
		} else {
			opts = append(opts, agent.WithMail(client))
		}
	}

	analyst, err := llm.NewClient(cfg.LLM, logger)
	if err != nil {
		logger.Warn("inference unavailable, narrative sections degrade", logging.KeyError, err)
	} else {
		opts = append(opts, agent.WithAnalyst(analyst))
	}

	store, err := memory.Open(cfg.Memory.Path, logger)
	if err != nil {
		logger.Warn("memory disabled for this session", logging.KeyError, err)
	} else {
		opts = append(opts, agent.WithMemory(store))
	}

	if cfg.Metrics.Enabled {
		provider, err := instrumentation.NewProvider("hawk", version)
		if err != nil {
			return nil, fmt.Errorf("set up metrics: %w", err)
		}
		rt.provider = provider
		rt.metrics = instrumentation.NewMetricsServer(cfg.Metrics.Addr)
		go func() {
			if err := rt.metrics.Start(); err != nil {
				logger.Warn("metrics server stopped", logging.KeyError, err)
			}
		}()
		opts = append(opts, agent.WithInstrumentation(provider.Metrics()))
	}

	rt.agent = agent.New(cfg.Analysis, opts...)
	return rt, nil
}

// close shuts down the metrics pipeline if one was started.
func (rt *runtime) close(ctx context.Context) {
	if rt.metrics != nil {
		if err := rt.metrics.Shutdown(ctx); err != nil {
			rt.logger.Warn("metrics server shutdown failed", logging.KeyError, err)
		}
	}
	if rt.provider != nil {
		if err := rt.provider.Shutdown(ctx); err != nil {
			rt.logger.Warn("metrics pipeline shutdown failed", logging.KeyError, err)
		}
	}
}
