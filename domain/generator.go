package domain

import "context"

// Message is one entry of the two-party history the external generator
// consumes.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	UserRole  Role = "user"
	ModelRole Role = "model"
)

// GenerateOptions carries the sampling parameters for one generation call.
type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Generator abstracts the external text-generation capability. It owns no
// state: callers pass the full history on every call.
type Generator interface {
	// Generate sends a single instruction with no prior history. Used only
	// for the opening turn.
	Generate(ctx context.Context, instruction string, opts GenerateOptions) (string, error)
	// GenerateChat replays the prior two-party history under the given
	// persona instruction and sends message as the newest user turn.
	GenerateChat(ctx context.Context, system string, history []Message, message Message, opts GenerateOptions) (string, error)
}

// Synthesizer renders text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (audio []byte, mime string, err error)
}

// Transcriber converts recorded candidate audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, sampleRateHertz int32) (string, error)
}
