package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/meetverdict/decision"
	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/poller"
	"github.com/kbukum/meetverdict/server"
	"github.com/kbukum/meetverdict/transcript"
	"github.com/kbukum/meetverdict/validation"
)

// Service is the orchestrator surface the handlers need.
type Service interface {
	StartJob(ctx context.Context, meetingURL string) (string, error)
	PollOnce(ctx context.Context, botID string) (*poller.Result, error)
	Analyze(ctx context.Context, chunks []transcript.Chunk) (*decision.Decision, error)
	AnalyzerConfigured() bool
}

// StartRequest is the body of POST /api/recall/start.
type StartRequest struct {
	MeetingURL string `json:"meeting_url" validate:"required"`
}

// StartResponse is returned once a bot has been created.
type StartResponse struct {
	BotID string `json:"bot_id"`
}

// AnalyzeResponse wraps a validated decision.
type AnalyzeResponse struct {
	Decision *decision.Decision `json:"decision"`
}

// AliveResponse is the GET /api/analyze liveness body.
type AliveResponse struct {
	Status           string `json:"status"`
	LLMKeyConfigured bool   `json:"llm_key_configured"`
}

// Handler serves the api routes.
type Handler struct {
	svc Service
}

// NewHandler creates a Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	g := r.Group("/api")
	g.POST("/recall/start", h.Start)
	g.GET("/recall/status", h.Status)
	g.GET("/analyze", h.Alive)
	g.POST("/analyze", h.Analyze)
}

// Start creates a recording bot for the meeting.
func (h *Handler) Start(c *gin.Context) {
	var req StartRequest
	if err := decodeJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	botID, err := h.svc.StartJob(c.Request.Context(), req.MeetingURL)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, StartResponse{BotID: botID})
}

// Status performs one poll tick for the bot_id query parameter.
func (h *Handler) Status(c *gin.Context) {
	res, err := h.svc.PollOnce(c.Request.Context(), c.Query("bot_id"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, res)
}

// Alive reports liveness and whether an analyzer is configured.
func (h *Handler) Alive(c *gin.Context) {
	server.RespondOK(c, AliveResponse{Status: "alive", LLMKeyConfigured: h.svc.AnalyzerConfigured()})
}

// Analyze runs a posted transcript through segmentation and analysis.
func (h *Handler) Analyze(c *gin.Context) {
	var req struct {
		Transcript json.RawMessage `json:"transcript"`
	}
	if err := decodeJSON(c, &req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	raw := bytes.TrimSpace(req.Transcript)
	if len(raw) == 0 || raw[0] != '[' {
		server.RespondWithError(c, apperrors.InvalidInput("transcript", "transcript must be an array"))
		return
	}
	var chunks []transcript.Chunk
	if err := json.Unmarshal(raw, &chunks); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("transcript", "transcript chunks are malformed").WithCause(err))
		return
	}

	d, err := h.svc.Analyze(c.Request.Context(), chunks)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, AnalyzeResponse{Decision: d})
}

func decodeJSON(c *gin.Context, dst any) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return apperrors.InvalidInput("body", "request body could not be read").WithCause(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.InvalidInput("body", "request body must be a JSON object").WithCause(err)
	}
	return nil
}
