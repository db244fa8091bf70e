package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/careerprep/interview-agent/domain"
	"github.com/careerprep/interview-agent/usecase"
	"github.com/careerprep/interview-agent/utils/log"
)

// Envelope is the frame format both directions of the live interview use.
// Clients send type "start", "message" or "end"; the server answers with
// "started", "reply", "audio", "ended" or "error".
type Envelope struct {
	Type        string `json:"type"`
	SessionID   string `json:"session_id,omitempty"`
	Role        string `json:"role,omitempty"`
	Text        string `json:"text,omitempty"`
	TurnCount   int    `json:"turn_count,omitempty"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	Mime        string `json:"mime,omitempty"`
	Error       string `json:"error,omitempty"`
}

type Server struct {
	upgrader    websocket.Upgrader
	registry    *usecase.SessionRegistry
	synthesizer domain.Synthesizer
	hub         *Hub
}

// NewServer wires the live-interview socket transport. synthesizer may be
// nil; reply frames are then sent without audio.
func NewServer(registry *usecase.SessionRegistry, synthesizer domain.Synthesizer) *Server {
	return &Server{
		upgrader:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		registry:    registry,
		synthesizer: synthesizer,
		hub:         NewHub(),
	}
}

func (s *Server) GetHub() *Hub {
	return s.hub
}

// handleInbound processes one frame from a connected client.
func (s *Server) handleInbound(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.send(c, Envelope{Type: "error", Error: "invalid frame"})
		return
	}

	switch env.Type {
	case "start":
		// One interview per socket: a rebind would strand the previous
		// session in the registry until process exit.
		if c.SessionID() != "" {
			s.send(c, Envelope{Type: "error", Error: "interview already started on this connection"})
			return
		}
		sessionID, opening, err := s.registry.Create(c.Context(), env.Role)
		if err != nil {
			log.WithCtx(c.Context()).Error("failed to start interview over socket", zap.Error(err))
			s.send(c, Envelope{Type: "error", Error: "failed to start interview"})
			return
		}
		c.bindSession(sessionID)
		s.send(c, Envelope{Type: "started", SessionID: sessionID, Text: opening})
		s.sendAudio(sessionCtx(c.Context(), sessionID), c, opening)

	case "message":
		sessionID := env.SessionID
		if sessionID == "" {
			sessionID = c.SessionID()
		}
		ctx := sessionCtx(c.Context(), sessionID)
		agent, err := s.registry.Lookup(sessionID)
		if err != nil {
			s.send(c, Envelope{Type: "error", Error: "invalid or expired session"})
			return
		}
		if strings.TrimSpace(env.Text) == "" {
			s.send(c, Envelope{Type: "error", Error: "text is required"})
			return
		}
		reply, turnCount := agent.HandleTurn(ctx, env.Text)
		s.send(c, Envelope{Type: "reply", SessionID: sessionID, Text: reply, TurnCount: turnCount})
		s.sendAudio(ctx, c, reply)

	case "end":
		sessionID := env.SessionID
		if sessionID == "" {
			sessionID = c.SessionID()
		}
		if err := s.registry.Remove(sessionID); err != nil {
			s.send(c, Envelope{Type: "error", Error: "session not found"})
			return
		}
		if sessionID == c.SessionID() {
			c.bindSession("")
		}
		s.send(c, Envelope{Type: "ended", SessionID: sessionID})

	default:
		s.send(c, Envelope{Type: "error", Error: "unknown frame type: " + env.Type})
	}
}

func (s *Server) send(c *Client, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.WithCtx(c.Context()).Error("failed to marshal frame", zap.Error(err))
		return
	}
	if err := c.SendMessage(data); err != nil {
		log.WithCtx(c.Context()).Error("failed to send frame", zap.Error(err))
	}
}

// sendAudio follows a text frame with its spoken rendering when TTS is
// configured. Synthesis failures only cost the audio frame.
func (s *Server) sendAudio(ctx context.Context, c *Client, text string) {
	if s.synthesizer == nil || strings.TrimSpace(text) == "" {
		return
	}

	audio, mime, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		log.WithCtx(ctx).Error("failed to synthesize reply audio", zap.Error(err))
		return
	}

	s.send(c, Envelope{
		Type:        "audio",
		SessionID:   c.SessionID(),
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Mime:        mime,
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
