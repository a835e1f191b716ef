package llm

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role" yaml:"role"` // "system", "user", "assistant"
	Content string `json:"content" yaml:"content"`
}

// JSONSchema constrains a completion to a JSON document matching Schema.
type JSONSchema struct {
	// Name identifies the schema to the provider.
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	// Strict asks the provider to enforce the schema exactly.
	Strict bool `json:"strict"`
}

// CompletionRequest is the universal input for all LLM providers.
type CompletionRequest struct {
	// Model overrides the adapter's default model.
	Model string `json:"model,omitempty" yaml:"model"`
	// Messages is the conversation history.
	Messages []Message `json:"messages" yaml:"messages"`
	// SystemPrompt is prepended as a system message.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt"`
	// Temperature controls randomness. Zero means the adapter default.
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature"`
	// MaxTokens limits the response length. 0 means provider default.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens"`
	// ResponseSchema requests structured JSON output.
	ResponseSchema *JSONSchema `json:"response_schema,omitempty" yaml:"-"`
}

// CompletionResponse is the universal output from all LLM providers.
type CompletionResponse struct {
	// Content is the generated text.
	Content string `json:"content"`
	// Refusal is set when the model declined to answer.
	Refusal string `json:"refusal,omitempty"`
	// FinishReason is the provider's stop reason, if reported.
	FinishReason string `json:"finish_reason,omitempty"`
	// Model is the model that produced the response.
	Model string `json:"model"`
	Usage Usage  `json:"usage"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// AllMessages is the message list a dialect sends: system prompt first,
// then the conversation.
func AllMessages(r CompletionRequest) []Message {
	if r.SystemPrompt == "" {
		return r.Messages
	}
	return append([]Message{{Role: "system", Content: r.SystemPrompt}}, r.Messages...)
}
