package recall

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/httpclient"
	"github.com/kbukum/meetverdict/httpclient/rest"
	"github.com/kbukum/meetverdict/logger"
	"github.com/kbukum/meetverdict/observability"
	"github.com/kbukum/meetverdict/provider"
)

const serviceName = "recall"

// Client talks to the bot provider.
type Client struct {
	cfg      Config
	rest     *rest.Client
	download *httpclient.Client

	createBot provider.RequestResponse[string, string]
	getBot    provider.RequestResponse[string, *Bot]
	fetch     provider.RequestResponse[string, *Download]
}

// Option configures a Client.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.Metrics
}

// WithLogger logs every provider call.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMetrics records every provider call.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates a client. It does not require credentials; calls made with
// an incomplete config fail with a configuration error.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rc, err := rest.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.TokenAuth(cfg.APIKey),
	})
	if err != nil {
		return nil, fmt.Errorf("recall: create rest client: %w", err)
	}
	dl, err := httpclient.New(httpclient.Config{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("recall: create download client: %w", err)
	}

	var limiter *provider.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = provider.NewRateLimiter(cfg.RateLimit, cfg.Burst)
	}

	c := &Client{cfg: cfg, rest: rc, download: dl}
	c.createBot = instrument(o, limiter, provider.Func("create_bot", c.doCreateBot))
	c.getBot = instrument(o, limiter, provider.Func("get_bot", c.doGetBot))
	c.fetch = instrument(o, nil, provider.Func("download_transcript", c.doDownload))
	return c, nil
}

// instrument wraps rr in tracing, optional logging and metrics, with the
// rate limiter innermost.
func instrument[I, O any](o options, rl *provider.RateLimiter, rr provider.RequestResponse[I, O]) provider.RequestResponse[I, O] {
	mws := []provider.Middleware[I, O]{provider.WithTracing[I, O](serviceName)}
	if o.log != nil {
		mws = append(mws, provider.WithLogging[I, O](o.log))
	}
	if o.metrics != nil {
		mws = append(mws, provider.WithMetrics[I, O](o.metrics))
	}
	mws = append(mws, provider.WithRateLimit[I, O](rl))
	return provider.Chain(mws...)(rr)
}

// Configured reports whether base URL and API key are both set.
func (c *Client) Configured() bool {
	return len(c.cfg.Missing()) == 0
}

// CheckHealth reports degraded while credentials are missing. It makes no
// network call.
func (c *Client) CheckHealth(context.Context) observability.Health {
	if missing := c.cfg.Missing(); len(missing) > 0 {
		return observability.Health{
			Name:    serviceName,
			Status:  observability.HealthStatusDegraded,
			Message: "missing " + strings.Join(missing, ", "),
		}
	}
	return observability.Health{Name: serviceName, Status: observability.HealthStatusUp}
}

// CreateBot asks the provider to send a bot into meetingURL and returns its id.
func (c *Client) CreateBot(ctx context.Context, meetingURL string) (string, error) {
	if err := c.requireConfig(); err != nil {
		return "", err
	}
	return c.createBot.Execute(ctx, meetingURL)
}

// GetBot fetches the bot's current status history and recordings.
func (c *Client) GetBot(ctx context.Context, botID string) (*Bot, error) {
	if err := c.requireConfig(); err != nil {
		return nil, err
	}
	return c.getBot.Execute(ctx, botID)
}

// DownloadTranscript GETs a transcript artifact URL without credentials.
// A non-2xx answer is returned as a Download, not an error; only transport
// failures are errors.
func (c *Client) DownloadTranscript(ctx context.Context, artifactURL string) (*Download, error) {
	return c.fetch.Execute(ctx, artifactURL)
}

func (c *Client) requireConfig() error {
	if missing := c.cfg.Missing(); len(missing) > 0 {
		return apperrors.ConfigurationError(missing...)
	}
	return nil
}

func (c *Client) doCreateBot(ctx context.Context, meetingURL string) (string, error) {
	body := createBotRequest{
		MeetingURL: meetingURL,
		BotName:    c.cfg.BotName,
		RecordingConfig: recordingConfig{
			Transcript: transcriptConfig{
				Provider: map[string]struct{}{"meeting_captions": {}},
			},
		},
	}

	resp, err := rest.Post[createBotResponse](ctx, c.rest, "/api/v1/bot", body)
	if err != nil {
		return "", upstream(err)
	}
	if resp.Data.ID == "" {
		return "", apperrors.UpstreamError(serviceName, http.StatusBadGateway, "bot created without an id")
	}
	return resp.Data.ID, nil
}

func (c *Client) doGetBot(ctx context.Context, botID string) (*Bot, error) {
	resp, err := rest.Get[Bot](ctx, c.rest, "/api/v1/bot/"+url.PathEscape(botID)+"/")
	if err != nil {
		appErr := upstream(err)
		if httpErr, ok := httpclient.AsError(err); ok && httpErr.StatusCode > 0 {
			appErr.Message = fmt.Sprintf("Recall bot fetch failed (%d)", httpErr.StatusCode)
		}
		return nil, appErr
	}
	bot := resp.Data
	return &bot, nil
}

func (c *Client) doDownload(ctx context.Context, artifactURL string) (*Download, error) {
	resp, err := c.download.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   artifactURL,
		Auth:   httpclient.NoAuth(),
	})
	if err != nil && !httpclient.IsStatus(err) {
		return nil, upstream(err)
	}
	return &Download{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// upstream maps client failures into the service taxonomy.
func upstream(err error) *apperrors.AppError {
	if httpErr, ok := httpclient.AsError(err); ok {
		return httpErr.AppError(serviceName)
	}
	return apperrors.UpstreamError(serviceName, http.StatusBadGateway, err.Error()).WithCause(err)
}
