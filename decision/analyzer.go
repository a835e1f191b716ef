package decision

import (
	"context"
	"encoding/json"
	"strings"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/llm"
	"github.com/kbukum/meetverdict/observability"
	"github.com/kbukum/meetverdict/provider"
)

// Analyzer turns rendered transcript text into a Decision-shaped payload.
// The payload is validated by Parse, not by the analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, readable string) (json.RawMessage, error)
}

// Decide runs the analyzer and validates its output.
func Decide(ctx context.Context, a Analyzer, readable string) (*Decision, error) {
	raw, err := a.Analyze(ctx, readable)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Completer is the chat completion backend the LLM analyzer drives.
type Completer = provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse]

// LLMAnalyzer asks a language model for a Decision using structured output.
type LLMAnalyzer struct {
	rr provider.RequestResponse[string, json.RawMessage]
}

// NewLLMAnalyzer adapts backend into an Analyzer. Middlewares wrap the
// adapted provider, first outermost.
func NewLLMAnalyzer(backend Completer, mws ...provider.Middleware[string, json.RawMessage]) *LLMAnalyzer {
	adapted := provider.Adapt[string, json.RawMessage, llm.CompletionRequest, llm.CompletionResponse](
		backend, "decision-analyzer", toCompletion, fromCompletion,
	)
	return &LLMAnalyzer{rr: provider.Chain(mws...)(adapted)}
}

// Analyze implements Analyzer.
func (a *LLMAnalyzer) Analyze(ctx context.Context, readable string) (json.RawMessage, error) {
	return a.rr.Execute(ctx, readable)
}

// CheckHealth reports whether the model backend is reachable.
func (a *LLMAnalyzer) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: "llm", Status: observability.HealthStatusUp}
	if !a.rr.IsAvailable(ctx) {
		h.Status = observability.HealthStatusDegraded
		h.Message = "model backend unreachable"
	}
	return h
}

func toCompletion(_ context.Context, readable string) (llm.CompletionRequest, error) {
	return llm.CompletionRequest{
		SystemPrompt:   SystemPrompt,
		Messages:       []llm.Message{{Role: "user", Content: UserPrompt(readable)}},
		ResponseSchema: Schema(),
	}, nil
}

func fromCompletion(resp llm.CompletionResponse) (json.RawMessage, error) {
	if resp.Refusal != "" {
		return nil, apperrors.AnalysisUnavailable("model refused: " + resp.Refusal)
	}
	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return nil, apperrors.AnalysisUnavailable("analyzer returned no decision payload")
	}
	return json.RawMessage(llm.ExtractJSON(content)), nil
}
