package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/httpclient"
	"github.com/kbukum/meetverdict/httpclient/rest"
)

// ErrNoDialect is returned by NewWithDialect when dialect is nil.
var ErrNoDialect = errors.New("llm: dialect is required")

// Adapter is a config-driven LLM client that works with any registered Dialect.
type Adapter struct {
	rest      *rest.Client
	dialect   Dialect
	name      string
	model     string
	temp      float64
	maxTokens int
}

// New creates an LLM adapter from config using the global dialect registry.
func New(cfg Config) (*Adapter, error) {
	cfg.ApplyDefaults()
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return newAdapter(dialect, cfg)
}

// NewWithDialect creates an LLM adapter with an explicit dialect instance.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	cfg.ApplyDefaults()
	return newAdapter(dialect, cfg)
}

func newAdapter(dialect Dialect, cfg Config) (*Adapter, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = dialect.DefaultBaseURL()
	}
	client, err := rest.New(httpclient.Config{
		BaseURL: baseURL,
		Timeout: cfg.Timeout,
		Auth:    cfg.auth(),
		Headers: cfg.Headers,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create rest client: %w", err)
	}

	return &Adapter{
		rest:      client,
		dialect:   dialect,
		name:      dialect.Name() + "-llm",
		model:     cfg.Model,
		temp:      cfg.Temperature,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.name }

// IsAvailable probes the dialect's health endpoint. Without one the
// adapter is assumed available.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	hp := a.dialect.HealthPath()
	if hp == "" {
		return true
	}
	_, err := rest.Get[json.RawMessage](ctx, a.rest, hp)
	return err == nil
}

// Execute sends a completion request and returns the full response.
// Transport and status failures are reported as upstream application errors.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	a.applyDefaults(&req)

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}

	resp, err := rest.Post[json.RawMessage](ctx, a.rest, a.dialect.ChatPath(), body)
	if err != nil {
		if httpErr, ok := httpclient.AsError(err); ok {
			return CompletionResponse{}, httpErr.AppError(a.name)
		}
		return CompletionResponse{}, apperrors.AnalysisUnavailable(err.Error()).WithCause(err)
	}

	result, err := a.dialect.ParseResponse(resp.Data)
	if err != nil {
		return CompletionResponse{}, apperrors.AnalysisUnavailable("unreadable model response").WithCause(err)
	}
	return *result, nil
}

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// Model returns the default model.
func (a *Adapter) Model() string { return a.model }

func (a *Adapter) applyDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.model
	}
	if req.Temperature == 0 {
		req.Temperature = a.temp
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.maxTokens
	}
}
