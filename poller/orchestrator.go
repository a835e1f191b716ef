package poller

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/kbukum/meetverdict/decision"
	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/httpclient"
	"github.com/kbukum/meetverdict/lifecycle"
	"github.com/kbukum/meetverdict/logger"
	"github.com/kbukum/meetverdict/observability"
	"github.com/kbukum/meetverdict/recall"
	"github.com/kbukum/meetverdict/transcript"
)

// EnvLLMKey is reported when no analyzer is configured.
const EnvLLMKey = "OPENAI_API_KEY"

var meetLink = regexp.MustCompile(`meet\.google\.com/[a-zA-Z0-9-]+`)

// JobClient is the bot provider as the orchestrator uses it.
type JobClient interface {
	CreateBot(ctx context.Context, meetingURL string) (string, error)
	GetBot(ctx context.Context, botID string) (*recall.Bot, error)
	DownloadTranscript(ctx context.Context, url string) (*recall.Download, error)
}

// Orchestrator runs the fetch, segment, render, analyze pipeline.
type Orchestrator struct {
	jobs     JobClient
	analyzer decision.Analyzer
	cfg      Config
	log      *logger.Logger
	metrics  *observability.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithMetrics sets the metric instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithConfig sets the loop configuration.
func WithConfig(cfg Config) Option {
	return func(o *Orchestrator) { o.cfg = cfg }
}

// New creates an orchestrator. A nil analyzer is allowed; analysis then
// fails with a configuration error.
func New(jobs JobClient, analyzer decision.Analyzer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		jobs:     jobs,
		analyzer: analyzer,
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.cfg.ApplyDefaults()
	o.log = o.log.WithComponent("poller")
	return o
}

// Interval returns the configured pause between ticks.
func (o *Orchestrator) Interval() time.Duration {
	return o.cfg.Interval
}

// AnalyzerConfigured reports whether an analyzer is wired.
func (o *Orchestrator) AnalyzerConfigured() bool {
	return o.analyzer != nil
}

// StartJob sends a bot into the meeting and returns its id.
func (o *Orchestrator) StartJob(ctx context.Context, meetingURL string) (string, error) {
	meetingURL = strings.TrimSpace(meetingURL)
	if meetingURL == "" {
		return "", apperrors.InvalidInput("meeting_url", "meeting_url required")
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanStartJob)
	defer span.End()

	log := o.log.WithContext(ctx)
	if !meetLink.MatchString(meetingURL) {
		log.Warn("URL does not look like a Google Meet link", logger.Fields("meeting_url", meetingURL))
	}

	botID, err := o.jobs.CreateBot(ctx, meetingURL)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return "", err
	}
	observability.SetSpanAttribute(ctx, observability.AttrBotID, botID)
	log.Info("bot created", logger.Fields(logger.FieldBotID, botID))
	return botID, nil
}

// PollOnce performs one tick for botID. Upstream and analysis failures are
// returned as errors; every other outcome, including a malformed artifact,
// is a Result.
func (o *Orchestrator) PollOnce(ctx context.Context, botID string) (*Result, error) {
	botID = strings.TrimSpace(botID)
	if botID == "" {
		return nil, apperrors.InvalidInput("bot_id", "bot_id required")
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanPollOnce)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrBotID, botID)

	res, err := o.tick(ctx, botID)
	if err != nil {
		observability.SetSpanError(ctx, err)
		o.metrics.RecordError(ctx, errorType(err), "poller")
		o.logTickError(ctx, botID, err)
		return nil, err
	}

	observability.SetSpanAttribute(ctx, observability.AttrStatusCode, res.Status)
	observability.SetSpanAttribute(ctx, observability.AttrState, string(res.State))
	o.metrics.RecordPoll(ctx, string(res.State))
	o.log.WithContext(ctx).Debug("poll tick", logger.Fields(
		logger.FieldBotID, botID,
		logger.FieldStatus, res.Status,
		logger.FieldState, string(res.State),
	))
	return res, nil
}

func (o *Orchestrator) tick(ctx context.Context, botID string) (*Result, error) {
	bot, err := o.jobs.GetBot(ctx, botID)
	if err != nil {
		return nil, err
	}

	tracker := lifecycle.NewTracker()
	obs := lifecycle.Observe(bot)
	res := &Result{BotID: botID, Status: obs.Code}

	action := tracker.Apply(obs)
	res.State = tracker.State()
	if action == lifecycle.Wait {
		if res.State == lifecycle.TranscriptPending {
			n := len(bot.Recordings)
			res.TranscriptNotReady = true
			res.Hint = HintNoArtifact
			res.RecordingsCount = &n
		}
		return res, nil
	}

	dl, err := o.jobs.DownloadTranscript(ctx, obs.TranscriptURL)
	if err != nil {
		return nil, err
	}
	if !dl.OK() {
		tracker.Apply(lifecycle.Event{Kind: lifecycle.DownloadRefused})
		res.State = tracker.State()
		res.TranscriptNotReady = true
		res.Hint = HintNotDownloadable
		res.TranscriptFetchStatus = dl.StatusCode
		res.RecallError = httpclient.BodyValue(dl.Body)
		return res, nil
	}

	chunks, err := transcript.ParseArtifact(dl.Body)
	if err != nil {
		tracker.Apply(lifecycle.Event{Kind: lifecycle.ArtifactMalformed})
		res.State = tracker.State()
		appErr := apperrors.Wrap(err)
		res.Error = appErr.Message
		res.Code = string(appErr.Code)
		res.TranscriptPreview = transcript.Preview(dl.Body)
		o.log.WithContext(ctx).Error("transcript artifact malformed", logger.Fields(
			logger.FieldBotID, botID, logger.FieldError, err.Error(),
		))
		return res, nil
	}
	tracker.Apply(lifecycle.Event{Kind: lifecycle.ArtifactParsed})

	d, err := o.Analyze(ctx, chunks)
	if err != nil {
		return nil, err
	}
	tracker.Apply(lifecycle.Event{Kind: lifecycle.DecisionReady})
	res.State = tracker.State()
	res.Status = "done"
	res.Decision = d
	return res, nil
}

// Analyze segments and renders chunks, then asks the analyzer for a decision.
func (o *Orchestrator) Analyze(ctx context.Context, chunks []transcript.Chunk) (*decision.Decision, error) {
	if o.analyzer == nil {
		return nil, apperrors.ConfigurationError(EnvLLMKey)
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanAnalyze)
	defer span.End()

	utterances := transcript.Segment(chunks)
	observability.SetSpanAttribute(ctx, observability.AttrUtterances, len(utterances))

	d, err := decision.Decide(ctx, o.analyzer, transcript.Render(utterances))
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	o.metrics.RecordAnalysis(ctx, d.MeetingWasWorthIt, d.ShouldSchedule)
	o.log.WithContext(ctx).Info("decision ready", logger.Fields(
		logger.FieldUtterances, len(utterances),
		"meeting_was_worth_it", d.MeetingWasWorthIt,
		"should_schedule", d.ShouldSchedule,
	))
	return d, nil
}

// Run polls botID until a final result, an error, or ctx is done. Each
// non-final result is passed to onUpdate. A tick that completes after ctx
// is cancelled is discarded.
func (o *Orchestrator) Run(ctx context.Context, botID string, onUpdate func(*Result)) (*Result, error) {
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		res, err := o.PollOnce(ctx, botID)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			return nil, err
		}
		if res.Final() {
			return res, nil
		}
		if onUpdate != nil {
			onUpdate(res)
		}
		timer.Reset(o.cfg.Interval)
	}
}

// logTickError logs transient provider failures at warn and the rest at error.
func (o *Orchestrator) logTickError(ctx context.Context, botID string, err error) {
	log := o.log.WithContext(ctx)
	fields := logger.Fields(logger.FieldBotID, botID, logger.FieldError, err.Error())
	switch {
	case httpclient.IsTimeout(err):
		log.Warn("poll tick timed out", fields)
	case httpclient.IsNotFound(err):
		log.Warn("bot not found", fields)
	default:
		log.Error("poll tick failed", fields)
	}
}

func errorType(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return "unknown"
}
