package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/mzafir/hawk-ai-agent/internal/config"
	"github.com/mzafir/hawk-ai-agent/internal/logging"
)

// FallbackResponse is returned whenever the inference endpoint cannot
// be reached or errors out. Callers never see an inference failure as
// an error; the run degrades instead.
const FallbackResponse = "analysis unavailable: inference service could not be reached"

// systemFraming is prepended to every prompt.
const systemFraming = `You are Hawk, an assistant specialized in project management and prospect communication analysis.`

// analysisGuidance tells the model what a useful answer looks like.
const analysisGuidance = `Provide detailed, actionable insights focusing on:
1. Communication gaps and opportunities
2. Prospect engagement patterns
3. Next steps and recommendations
4. Risk assessment

Be specific and data-driven in your analysis.`

// Model abstracts the underlying language model so tests can stub it.
type Model interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// Client generates analysis text from a hosted language model through
// an OpenAI-compatible endpoint.
type Client struct {
	model     Model
	maxTokens int
	timeout   time.Duration
	logger    logging.Logger
}

// NewClient builds a Client from configuration. Construction fails only
// on unusable configuration; runtime failures degrade to
// FallbackResponse.
func NewClient(cfg config.LLMConfig, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey.IsSet() {
		opts = append(opts, openai.WithToken(cfg.APIKey.Value()))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create inference client: %w", err)
	}
	return &Client{
		model:     model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		logger:    logger,
	}, nil
}

// NewClientWithModel wires an explicit Model. Used by tests and by the
// instrumentation decorator.
func NewClientWithModel(model Model, maxTokens int, timeout time.Duration, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{model: model, maxTokens: maxTokens, timeout: timeout, logger: logger}
}

// Generate asks the model for analysis. The context string carries
// prior conversation history; it may be empty. On any failure the fixed
// fallback string is returned, never an error.
func (c *Client) Generate(ctx context.Context, prompt, contextText string) string {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	full := BuildPrompt(prompt, contextText)

	var opts []llms.CallOption
	if c.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.maxTokens))
	}

	out, err := c.model.Call(ctx, full, opts...)
	if err != nil {
		c.logger.Warn("inference call failed", logging.KeyError, err)
		return FallbackResponse
	}
	return strings.TrimSpace(out)
}

// BuildPrompt assembles the full prompt sent to the model.
func BuildPrompt(prompt, contextText string) string {
	var b strings.Builder
	b.WriteString(systemFraming)
	b.WriteString("\n\n")
	if contextText != "" {
		b.WriteString("Context from previous conversations and analysis:\n")
		b.WriteString(contextText)
		b.WriteString("\n\n")
	}
	b.WriteString("Current request:\n")
	b.WriteString(prompt)
	b.WriteString("\n\n")
	b.WriteString(analysisGuidance)
	return b.String()
}

// EstimateTokens gives a rough token count for cost metrics. It is a
// word-count heuristic, not a tokenizer.
func EstimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * 1.3)
}
