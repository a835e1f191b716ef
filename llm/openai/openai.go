// Package openai is the OpenAI chat completions dialect for package llm.
//
// Importing it registers the "openai" dialect.
package openai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/meetverdict/llm"
)

// DialectName is the registered dialect name.
const DialectName = "openai"

const defaultBaseURL = "https://api.openai.com"

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect maps llm types to the /v1/chat/completions wire format.
type Dialect struct{}

func (d *Dialect) Name() string           { return DialectName }
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }
func (d *Dialect) ChatPath() string       { return "/v1/chat/completions" }
func (d *Dialect) HealthPath() string     { return "/v1/models" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string          `json:"type"`
	JSONSchema *llm.JSONSchema `json:"json_schema,omitempty"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
			Refusal *string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage llm.Usage `json:"usage"`
}

// BuildRequest maps a CompletionRequest. A ResponseSchema becomes a
// json_schema response format.
func (d *Dialect) BuildRequest(req llm.CompletionRequest) (any, error) {
	if req.Model == "" {
		return nil, errors.New("openai: model is required")
	}

	msgs := llm.AllMessages(req)
	body := chatRequest{
		Model:     req.Model,
		Messages:  make([]chatMessage, 0, len(msgs)),
		MaxTokens: req.MaxTokens,
	}
	for _, m := range msgs {
		body.Messages = append(body.Messages, chatMessage(m))
	}
	if req.Temperature != 0 {
		t := req.Temperature
		body.Temperature = &t
	}
	if req.ResponseSchema != nil {
		body.ResponseFormat = &responseFormat{Type: "json_schema", JSONSchema: req.ResponseSchema}
	}
	return body, nil
}

// ParseResponse reads the first choice.
func (d *Dialect) ParseResponse(body []byte) (*llm.CompletionResponse, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: response has no choices")
	}

	choice := resp.Choices[0]
	out := &llm.CompletionResponse{
		Model:        resp.Model,
		FinishReason: choice.FinishReason,
		Usage:        resp.Usage,
	}
	if choice.Message.Content != nil {
		out.Content = *choice.Message.Content
	}
	if choice.Message.Refusal != nil {
		out.Refusal = *choice.Message.Refusal
	}
	return out, nil
}
