// Package ollama is the Ollama native chat dialect for package llm.
//
// Importing it registers the "ollama" dialect, which lets the analyzer run
// against a local model.
package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/meetverdict/llm"
)

// DialectName is the registered dialect name.
const DialectName = "ollama"

const defaultBaseURL = "http://localhost:11434"

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps llm types to Ollama's /api/chat format.
type Dialect struct{}

func (d *Dialect) Name() string           { return DialectName }
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }
func (d *Dialect) ChatPath() string       { return "/api/chat" }
func (d *Dialect) HealthPath() string     { return "/api/tags" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	// Format is "json" or a JSON schema object.
	Format  any          `json:"format,omitempty"`
	Options *chatOptions `json:"options,omitempty"`
}

type chatResponse struct {
	Model           string      `json:"model"`
	Message         chatMessage `json:"message"`
	Done            bool        `json:"done"`
	DoneReason      string      `json:"done_reason,omitempty"`
	PromptEvalCount int         `json:"prompt_eval_count,omitempty"`
	EvalCount       int         `json:"eval_count,omitempty"`
}

// BuildRequest maps a CompletionRequest to a non-streaming chat request.
// A ResponseSchema is passed through as the structured output format.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	msgs := llm.AllMessages(req)
	body := chatRequest{
		Model:    req.Model,
		Messages: make([]chatMessage, 0, len(msgs)),
	}
	for _, m := range msgs {
		body.Messages = append(body.Messages, chatMessage(m))
	}
	if req.ResponseSchema != nil {
		body.Format = req.ResponseSchema.Schema
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		body.Options = &chatOptions{Temperature: req.Temperature, NumPredict: req.MaxTokens}
	}
	return body, nil
}

// ParseResponse reads a complete (non-streamed) chat response.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ollama: decode response: %w", err)
	}
	return &llm.CompletionResponse{
		Content:      resp.Message.Content,
		Model:        resp.Model,
		FinishReason: resp.DoneReason,
		Usage: llm.Usage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
	}, nil
}
