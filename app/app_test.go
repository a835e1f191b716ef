package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/meetverdict/config"
	"github.com/kbukum/meetverdict/logger"
	"github.com/kbukum/meetverdict/observability"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RECALL_BASE_URL", "RECALL_API_KEY", "OPENAI_API_KEY", "LLM_API_KEY", "LLM_BASE_URL"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func testConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearCredentials(t)
	path := writeConfig(t, `
name: meetverdict
environment: staging
recall:
  base_url: https://us-west-2.recall.ai/
  bot_name: Verdict Bot
llm:
  model: gpt-4o
poll:
  interval: 5s
server:
  port: 9090
shutdown_timeout: 3s
`)
	t.Setenv("RECALL_API_KEY", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Recall.BaseURL != "https://us-west-2.recall.ai" {
		t.Errorf("base url = %q", cfg.Recall.BaseURL)
	}
	if cfg.Recall.APIKey != "from-env" {
		t.Errorf("recall api key = %q", cfg.Recall.APIKey)
	}
	if cfg.Recall.BotName != "Verdict Bot" {
		t.Errorf("bot name = %q", cfg.Recall.BotName)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("llm api key should fall back to OPENAI_API_KEY, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "gpt-4o" || cfg.LLM.Dialect != "openai" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Poll.Interval != 5*time.Second {
		t.Errorf("interval = %s", cfg.Poll.Interval)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown timeout = %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearCredentials(t)
	cfg, err := Load(config.WithConfigFile(writeConfig(t, "{}\n")))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != ServiceName {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Poll.Interval != 2500*time.Millisecond {
		t.Errorf("interval = %s", cfg.Poll.Interval)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.Recall.BotName != "Meeting Notetaker" {
		t.Errorf("bot name = %q", cfg.Recall.BotName)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("shutdown timeout = %s", cfg.ShutdownTimeout)
	}
}

func TestNew_GracefulTimeout(t *testing.T) {
	tests := []struct {
		name string
		cfg  time.Duration
		opts []Option
		want time.Duration
	}{
		{"from config", 3 * time.Second, nil, 3 * time.Second},
		{"unset", 0, nil, DefaultShutdownTimeout},
		{"option wins", 3 * time.Second, []Option{WithGracefulTimeout(time.Second)}, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.ShutdownTimeout = tt.cfg
			opts := append([]Option{WithLogger(logger.NewNop())}, tt.opts...)
			a, err := New(context.Background(), cfg, opts...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer func() { _ = a.Shutdown() }()
			if a.gracefulTimeout != tt.want {
				t.Errorf("graceful timeout = %s, want %s", a.gracefulTimeout, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"unknown dialect", func(c *Config) { c.LLM.Dialect = "carrier-pigeon" }, "dialect"},
		{"sample rate", func(c *Config) { c.Observability.SampleRate = 2 }, "sample_rate"},
		{"temperature", func(c *Config) { c.LLM.Temperature = 3 }, "temperature"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "port"},
		{"environment", func(c *Config) { c.Environment = "moon" }, "environment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Fatalf("err = %v, want mention of %q", err, tt.errSub)
			}
		})
	}
	if err := testConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestNew_WithoutModel(t *testing.T) {
	a, err := New(context.Background(), testConfig(), WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = a.Shutdown() }()

	if a.Analyzer != nil || a.Orchestrator.AnalyzerConfigured() {
		t.Fatal("analysis should be disabled without a model")
	}
	if got := len(a.HealthCheckers()); got != 1 {
		t.Fatalf("expected only the recall checker, got %d", got)
	}

	h := a.NewServer().Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/analyze", http.NoBody))
	var alive struct {
		LLMKeyConfigured bool `json:"llm_key_configured"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &alive)
	if rr.Code != http.StatusOK || alive.LLMKeyConfigured {
		t.Fatalf("unexpected alive response %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var health observability.ServiceHealth
	_ = json.Unmarshal(rr.Body.Bytes(), &health)
	if rr.Code != http.StatusOK || health.Status != observability.HealthStatusDegraded {
		t.Fatalf("expected degraded 200, got %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recall/status?bot_id=bot-1", http.NoBody))
	if rr.Code != http.StatusInternalServerError || !strings.Contains(rr.Body.String(), "RECALL_API_KEY") {
		t.Fatalf("expected configuration error, got %d %s", rr.Code, rr.Body.String())
	}
}

func TestNew_WithModelWiresAnalyzer(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/models" {
			_, _ = w.Write([]byte(`{"data":[]}`))
			return
		}
		content := `{"meeting_was_worth_it":false,"sassy_verdict":"Email.","should_schedule":false,` +
			`"firm_verdict":"Nothing to schedule.","confidence":0.9,"suggested_title":null,` +
			`"suggested_when":null,"suggested_start_iso":null,"duration_minutes":null}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	defer model.Close()

	cfg := testConfig()
	cfg.LLM.BaseURL = model.URL
	cfg.LLM.APIKey = "sk-test"

	a, err := New(context.Background(), cfg, WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = a.Shutdown() }()

	if a.Analyzer == nil || !a.Orchestrator.AnalyzerConfigured() {
		t.Fatal("analyzer should be wired")
	}

	body := `{"transcript":[{"participant":{"id":1,"name":"Alice"},"words":[` +
		`{"text":"quick","start_timestamp":{"relative":0},"end_timestamp":{"relative":0.4}},` +
		`{"text":"sync","start_timestamp":{"relative":0.5},"end_timestamp":{"relative":0.9}}]}]}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	a.NewServer().Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"firm_verdict":"Nothing to schedule."`) {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestShutdown_RunsHooksInReverse(t *testing.T) {
	a := &App{Logger: logger.NewNop(), gracefulTimeout: time.Second}
	var order []string
	a.OnStop(
		func(context.Context) error { order = append(order, "first"); return nil },
		func(context.Context) error { order = append(order, "second"); return context.Canceled },
	)

	if err := a.Shutdown(); err != context.Canceled {
		t.Fatalf("err = %v", err)
	}
	if strings.Join(order, ",") != "second,first" {
		t.Fatalf("order = %v", order)
	}
	if err := a.Shutdown(); err != nil {
		t.Fatalf("second shutdown should be a no-op, got %v", err)
	}
}

func TestRunTask_ReturnsTaskError(t *testing.T) {
	a := &App{Logger: logger.NewNop(), gracefulTimeout: time.Second}
	stopped := false
	a.OnStop(func(context.Context) error { stopped = true; return nil })

	err := a.RunTask(context.Background(), func(context.Context) error { return os.ErrNotExist })
	if err != os.ErrNotExist {
		t.Fatalf("err = %v", err)
	}
	if !stopped {
		t.Fatal("stop hooks should run after the task")
	}
}
