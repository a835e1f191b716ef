package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/poller"
)

const sampleTranscript = `[
  {"participant": {"id": 1, "name": "Alice"}, "words": [
    {"text": "Hi", "start_timestamp": {"relative": 0.0}, "end_timestamp": {"relative": 0.3}},
    {"text": "there", "start_timestamp": {"relative": 0.4}, "end_timestamp": {"relative": 0.8}},
    {"text": ".", "start_timestamp": {"relative": 0.8}, "end_timestamp": {"relative": 0.8}}
  ]},
  {"participant": {"id": 2, "name": "Bob"}, "words": [
    {"text": "Hello", "start_timestamp": {"relative": 1.0}, "end_timestamp": {"relative": 1.4}}
  ]}
]`

const decisionContent = `{"meeting_was_worth_it":true,"sassy_verdict":"Surprisingly useful.",` +
	`"should_schedule":false,"firm_verdict":"No follow-up needed.","confidence":0.7,` +
	`"suggested_title":null,"suggested_when":null,"suggested_start_iso":null,"duration_minutes":null}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func unsetCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RECALL_BASE_URL", "RECALL_API_KEY", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// fakeUpstream serves both the recording provider and the model API.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/bot":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"bot-123"}`))
		case r.URL.Path == "/api/v1/bot/bot-123/":
			fmt.Fprintf(w, `{"id":"bot-123","status_changes":[{"code":"in_call_recording"},{"code":"done"}],`+
				`"recordings":[{"id":"rec-1","media_shortcuts":{"transcript":{"data":{"download_url":"%s/artifact"}}}}]}`, srv.URL)
		case r.URL.Path == "/artifact":
			if r.Header.Get("Authorization") != "" {
				t.Error("artifact download must not carry credentials")
			}
			_, _ = w.Write([]byte(sampleTranscript))
		case r.URL.Path == "/v1/chat/completions":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []any{map[string]any{
					"message":       map[string]any{"role": "assistant", "content": decisionContent},
					"finish_reason": "stop",
				}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func configFor(t *testing.T, upstream string) string {
	t.Helper()
	return writeFile(t, "config.yml", fmt.Sprintf(`
name: meetverdict
logging:
  level: error
recall:
  base_url: %[1]s
  api_key: test-key
llm:
  base_url: %[1]s
  api_key: sk-test
`, upstream))
}

func TestAnalyze_RenderOnly(t *testing.T) {
	path := writeFile(t, "transcript.json", sampleTranscript)

	out, err := run(t, "analyze", "--render-only", path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	want := "Alice: Hi there.\nBob: Hello\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestAnalyze_MalformedTranscript(t *testing.T) {
	path := writeFile(t, "transcript.json", `{"error":"expired"}`)

	_, err := run(t, "analyze", "--render-only", path)
	if !apperrors.HasCode(err, apperrors.ErrCodeTranscriptMalformed) {
		t.Fatalf("err = %v, want TRANSCRIPT_MALFORMED", err)
	}
}

func TestAnalyze_MissingFile(t *testing.T) {
	_, err := run(t, "analyze", "--render-only", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "reading transcript") {
		t.Fatalf("err = %v", err)
	}
}

func TestAnalyze_CallsModel(t *testing.T) {
	unsetCredentials(t)
	upstream := fakeUpstream(t)
	path := writeFile(t, "transcript.json", sampleTranscript)

	out, err := run(t, "--config", configFor(t, upstream.URL), "analyze", path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "worth it; no follow-up") {
		t.Errorf("missing summary in %q", out)
	}
	if !strings.Contains(out, `"firm_verdict": "No follow-up needed."`) {
		t.Errorf("missing decision JSON in %q", out)
	}
}

func TestStart_PrintsBotID(t *testing.T) {
	unsetCredentials(t)
	upstream := fakeUpstream(t)

	out, err := run(t, "--config", configFor(t, upstream.URL), "start", "https://meet.google.com/abc-defg-hij")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if strings.TrimSpace(out) != "bot-123" {
		t.Fatalf("output = %q", out)
	}
}

func TestStart_WithoutCredentials(t *testing.T) {
	unsetCredentials(t)
	cfg := writeFile(t, "config.yml", "name: meetverdict\nlogging:\n  level: error\n")

	_, err := run(t, "--config", cfg, "start", "https://meet.google.com/abc-defg-hij")
	if !apperrors.HasCode(err, apperrors.ErrCodeConfiguration) {
		t.Fatalf("err = %v, want CONFIGURATION_ERROR", err)
	}
}

func TestWatch_PrintsDecision(t *testing.T) {
	unsetCredentials(t)
	upstream := fakeUpstream(t)

	out, err := run(t, "--config", configFor(t, upstream.URL), "watch", "--interval", "10ms", "bot-123")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !strings.Contains(out, "analyzed (done)") {
		t.Errorf("missing final status in %q", out)
	}
	if !strings.Contains(out, `"meeting_was_worth_it": true`) {
		t.Errorf("missing decision in %q", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "meetverdict ") {
		t.Fatalf("output = %q", out)
	}

	out, err = run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var info map[string]any
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("not JSON: %v (%q)", err, out)
	}
	if _, ok := info["go_version"]; !ok {
		t.Errorf("missing go_version in %v", info)
	}
}

func TestPrintFinal_MalformedArtifact(t *testing.T) {
	var buf bytes.Buffer
	err := printFinal(&buf, &poller.Result{Error: "Transcript download was not an array", Code: "TRANSCRIPT_MALFORMED"})
	if err == nil || !strings.Contains(err.Error(), "TRANSCRIPT_MALFORMED") {
		t.Fatalf("err = %v", err)
	}
}
