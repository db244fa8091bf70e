package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/careerprep/interview-agent/domain"
)

const (
	model = "gemini-2.5-flash"

	// Every generation call is bounded; an unbounded hang is a defect.
	requestTimeout = 30 * time.Second
)

type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient builds the generator over the Gemini API. An empty
// credential returns domain.ErrNotConfigured so the caller can wire the
// degraded generator instead of crashing the process.
func NewGeminiClient(ctx context.Context, apiKey string) (domain.Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is empty", domain.ErrNotConfigured)
	}

	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			APIKey:      apiKey,
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

func (g *GeminiClient) Generate(ctx context.Context, instruction string, opts domain.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(
		ctx,
		model,
		genai.Text(instruction),
		generateConfig(opts, ""),
	)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", domain.ErrExternalService, err)
	}

	return usableText(resp.Text())
}

func (g *GeminiClient) GenerateChat(ctx context.Context, system string, history []domain.Message, message domain.Message, opts domain.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	geminiHistory := make([]*genai.Content, len(history))
	for i, msg := range history {
		role := genai.RoleModel
		if msg.Role == domain.UserRole {
			role = genai.RoleUser
		}
		geminiHistory[i] = &genai.Content{
			Role: role,
			Parts: []*genai.Part{
				{Text: msg.Content},
			},
		}
	}

	chat, err := g.client.Chats.Create(ctx, model, generateConfig(opts, system), geminiHistory)
	if err != nil {
		return "", fmt.Errorf("%w: creating chat: %v", domain.ErrExternalService, err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message.Content})
	if err != nil {
		return "", fmt.Errorf("%w: send message: %v", domain.ErrExternalService, err)
	}

	return usableText(resp.Text())
}

func generateConfig(opts domain.GenerateOptions, system string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: system},
			},
		}
	}
	return config
}

// usableText trims the reply and maps an empty one (content filtered,
// safety blocked) to a typed error instead of handing back blank dialogue.
func usableText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrContentFiltered
	}
	return text, nil
}
