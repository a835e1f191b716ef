package provider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/logger"
	"github.com/kbukum/meetverdict/observability"
	"github.com/kbukum/meetverdict/provider"
)

type echoProvider struct {
	name string
	err  error
}

func (e *echoProvider) Name() string                     { return e.name }
func (e *echoProvider) IsAvailable(context.Context) bool { return true }
func (e *echoProvider) Execute(_ context.Context, in string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "echo:" + in, nil
}

type orderTracker struct {
	inner provider.RequestResponse[string, string]
	tag   string
	order *[]string
}

func (o *orderTracker) Name() string                         { return o.inner.Name() }
func (o *orderTracker) IsAvailable(ctx context.Context) bool { return o.inner.IsAvailable(ctx) }
func (o *orderTracker) Execute(ctx context.Context, in string) (string, error) {
	*o.order = append(*o.order, o.tag+":before")
	out, err := o.inner.Execute(ctx, in)
	*o.order = append(*o.order, o.tag+":after")
	return out, err
}

func TestChain_Empty(t *testing.T) {
	wrapped := provider.Chain[string, string]()(&echoProvider{name: "test"})
	if wrapped.Name() != "test" {
		t.Fatalf("expected 'test', got %q", wrapped.Name())
	}
	out, err := wrapped.Execute(context.Background(), "hello")
	if err != nil || out != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, err %v", out, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(tag string) provider.Middleware[string, string] {
		return func(inner provider.RequestResponse[string, string]) provider.RequestResponse[string, string] {
			return &orderTracker{inner: inner, tag: tag, order: &order}
		}
	}

	wrapped := provider.Chain(mw("A"), mw("B"), mw("C"))(&echoProvider{name: "test"})
	if _, err := wrapped.Execute(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A:before", "B:before", "C:before", "C:after", "B:after", "A:after"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestAdapt_MapsInputAndOutput(t *testing.T) {
	adapted := provider.Adapt[int, int, string, string](
		&echoProvider{name: "backend"},
		"lengths",
		func(_ context.Context, n int) (string, error) { return strings.Repeat("x", n), nil },
		func(out string) (int, error) { return len(out), nil },
	)

	if adapted.Name() != "lengths" {
		t.Errorf("Name() = %q", adapted.Name())
	}
	got, err := adapted.Execute(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if got != len("echo:xxx") {
		t.Errorf("got %d", got)
	}
}

func TestAdapt_MapInErrorSkipsBackend(t *testing.T) {
	called := false
	backend := provider.Func("backend", func(_ context.Context, s string) (string, error) {
		called = true
		return s, nil
	})
	wantErr := errors.New("bad input")
	adapted := provider.Adapt[string, string, string, string](
		backend, "domain",
		func(context.Context, string) (string, error) { return "", wantErr },
		func(s string) (string, error) { return s, nil },
	)

	if _, err := adapted.Execute(context.Background(), "x"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if called {
		t.Error("backend should not be called when mapIn fails")
	}
}

func TestWithLogging_LevelByRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"success", nil, "debug"},
		{"retryable", apperrors.TranscriptNotReady("keep polling"), "warn"},
		{"fatal", apperrors.AnalysisUnavailable("empty"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
			wrapped := provider.WithLogging[string, string](log)(&echoProvider{name: "p", err: tt.err})

			_, _ = wrapped.Execute(context.Background(), "x")

			var entry map[string]any
			if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
				t.Fatalf("decode log line %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["provider"] != "p" {
				t.Errorf("provider = %v", entry["provider"])
			}
		})
	}
}

func TestWithTracing_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	wrapped := provider.WithTracing[string, string]("svc")(&echoProvider{name: "llm", err: errors.New("boom")})
	_, _ = wrapped.Execute(context.Background(), "x")

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "svc.llm" {
		t.Errorf("span name = %q", spans[0].Name())
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected the error to be recorded as a span event")
	}
}

func TestWithMetrics_PassesThrough(t *testing.T) {
	metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatal(err)
	}
	wrapped := provider.WithMetrics[string, string](metrics)(&echoProvider{name: "p"})

	out, err := wrapped.Execute(context.Background(), "hi")
	if err != nil || out != "echo:hi" {
		t.Fatalf("got %q, %v", out, err)
	}

	var nilMetrics *observability.Metrics
	wrapped = provider.WithMetrics[string, string](nilMetrics)(&echoProvider{name: "p", err: errors.New("x")})
	if _, err := wrapped.Execute(context.Background(), "hi"); err == nil {
		t.Fatal("expected error to propagate")
	}
}
