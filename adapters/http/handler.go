package http

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/careerprep/interview-agent/adapters/websocket"
	"github.com/careerprep/interview-agent/domain"
	"github.com/careerprep/interview-agent/usecase"
	"github.com/careerprep/interview-agent/utils/log"
)

const (
	// Recorded answers default to 16 kHz LINEAR16 when the client does not
	// say otherwise.
	DefaultSampleRate = 16000

	MaxAudioBytes = 10 * 1024 * 1024
)

type InterviewHandler struct {
	registry    *usecase.SessionRegistry
	synthesizer domain.Synthesizer
	transcriber domain.Transcriber
	wsHub       *websocket.Hub
}

type StartRequest struct {
	Role string `json:"role"`
}

type StartResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

type MessageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type MessageResponse struct {
	Reply     string `json:"reply"`
	TurnCount int    `json:"turn_count"`
	Text      string `json:"text,omitempty"`
}

type TTSRequest struct {
	Text string `json:"text"`
}

type TTSResponse struct {
	AudioBase64 string `json:"audio_base64"`
	Mime        string `json:"mime"`
}

// NewInterviewHandler wires the REST surface. synthesizer and transcriber
// may be nil when their credentials are absent; the matching endpoints
// then report the service as unconfigured. wsHub may be nil when the
// socket transport is not served.
func NewInterviewHandler(registry *usecase.SessionRegistry, synthesizer domain.Synthesizer, transcriber domain.Transcriber, wsHub *websocket.Hub) *InterviewHandler {
	return &InterviewHandler{
		registry:    registry,
		synthesizer: synthesizer,
		transcriber: transcriber,
		wsHub:       wsHub,
	}
}

// StartInterview creates a session and returns the opening question. A
// generation failure retains no session.
func (h *InterviewHandler) StartInterview(c echo.Context) error {
	req := StartRequest{}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ctx := c.Request().Context()
	sessionID, opening, err := h.registry.Create(ctx, req.Role)
	if err != nil {
		log.WithCtx(ctx).Error("failed to start interview", zap.String("role", req.Role), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start interview")
	}

	return c.JSON(http.StatusOK, StartResponse{
		SessionID: sessionID,
		Reply:     opening,
	})
}

// SendMessage exchanges a candidate answer for the next interviewer turn.
func (h *InterviewHandler) SendMessage(c echo.Context) error {
	req := MessageRequest{}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text is required")
	}

	agent, err := h.registry.Lookup(req.SessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired session_id")
	}

	reply, turnCount := agent.HandleTurn(sessionCtx(c.Request().Context(), req.SessionID), req.Text)
	return c.JSON(http.StatusOK, MessageResponse{
		Reply:     reply,
		TurnCount: turnCount,
	})
}

// SendAudioMessage accepts one recorded candidate answer, transcribes it,
// and feeds the transcript through the interview. Session id and sample
// rate ride on query parameters; the body is raw audio.
func (h *InterviewHandler) SendAudioMessage(c echo.Context) error {
	if h.transcriber == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Speech transcription is not configured")
	}

	contentType := c.Request().Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") && !strings.HasPrefix(contentType, "application/octet-stream") {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid content type. Expected audio/* or application/octet-stream")
	}

	sessionID := c.QueryParam("session_id")
	agent, err := h.registry.Lookup(sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired session_id")
	}

	sampleRate := DefaultSampleRate
	if v := c.QueryParam("sample_rate"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			sampleRate = parsed
		}
	}

	audio, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxAudioBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read audio body")
	}
	if len(audio) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Audio body is required")
	}

	ctx := sessionCtx(c.Request().Context(), sessionID)
	transcript, err := h.transcriber.Transcribe(ctx, audio, int32(sampleRate))
	if err != nil {
		log.WithCtx(ctx).Error("transcription failed", zap.String("session_id", sessionID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to transcribe audio")
	}
	if transcript == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No speech recognized in audio")
	}

	reply, turnCount := agent.HandleTurn(ctx, transcript)
	return c.JSON(http.StatusOK, MessageResponse{
		Reply:     reply,
		TurnCount: turnCount,
		Text:      transcript,
	})
}

// EndSession removes a session. Unknown ids report not found.
func (h *InterviewHandler) EndSession(c echo.Context) error {
	sessionID := c.Param("id")
	if err := h.registry.Remove(sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Session not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to end session")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "session ended"})
}

// Synthesize renders interviewer text to audio. Empty text is rejected
// before the collaborator is ever called.
func (h *InterviewHandler) Synthesize(c echo.Context) error {
	req := TTSRequest{}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text is required")
	}
	if h.synthesizer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Speech synthesis is not configured")
	}

	ctx := c.Request().Context()
	audio, mime, err := h.synthesizer.Synthesize(ctx, req.Text)
	if err != nil {
		log.WithCtx(ctx).Error("speech synthesis failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "TTS failed")
	}

	return c.JSON(http.StatusOK, TTSResponse{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Mime:        mime,
	})
}

// HealthCheck never fails.
func (h *InterviewHandler) HealthCheck(c echo.Context) error {
	connected := 0
	if h.wsHub != nil {
		connected = h.wsHub.ClientCount()
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"active_sessions":   h.registry.Count(),
		"connected_clients": connected,
		"timestamp":         time.Now().UTC(),
	})
}

// sessionCtx binds the session id into the context so logger fields carry
// it.
func sessionCtx(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, "session_id", sessionID)
}
