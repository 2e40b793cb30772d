package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	response string
	err      error
	prompt   string
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestClient_Generate(t *testing.T) {
	model := &fakeModel{response: "  detailed analysis  "}
	c := NewClientWithModel(model, 1000, time.Second, nil)

	out := c.Generate(context.Background(), "analyze TUSD", "prior context")

	assert.Equal(t, "detailed analysis", out)
	assert.Contains(t, model.prompt, "analyze TUSD")
	assert.Contains(t, model.prompt, "prior context")
}

func TestClient_Generate_FallbackOnError(t *testing.T) {
	model := &fakeModel{err: errors.New("connection refused")}
	c := NewClientWithModel(model, 1000, time.Second, nil)

	out := c.Generate(context.Background(), "analyze TUSD", "")

	assert.Equal(t, FallbackResponse, out)
}

func TestBuildPrompt(t *testing.T) {
	full := BuildPrompt("current ask", "old context")

	assert.Contains(t, full, "Hawk")
	assert.Contains(t, full, "old context")
	assert.Contains(t, full, "current ask")
	assert.Contains(t, full, "Risk assessment")
}

func TestBuildPrompt_NoContext(t *testing.T) {
	full := BuildPrompt("current ask", "")

	assert.NotContains(t, full, "previous conversations")
	assert.Contains(t, full, "current ask")
}

func TestEstimateTokens(t *testing.T) {
	assert.Zero(t, EstimateTokens(""))
	assert.Equal(t, 13, EstimateTokens("one two three four five six seven eight nine ten"))
}
