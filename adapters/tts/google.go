package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/careerprep/interview-agent/domain"
)

type GoogleTTS struct {
	client *texttospeech.Client
	voice  *texttospeechpb.VoiceSelectionParams
}

// NewGoogleTTS builds the synthesizer over Google Cloud Text-to-Speech.
// voiceName may be empty, letting the service pick a default for the
// language.
func NewGoogleTTS(ctx context.Context, languageCode, voiceName string) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating Google tts client: %w", err)
	}
	return &GoogleTTS{
		client: client,
		voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         voiceName,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
	}, nil
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	// Spoken output must never carry the asterisk glyph.
	text = strings.ReplaceAll(text, "*", "")

	req := texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{
				Text: text,
			},
		},
		Voice: g.voice,
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}
	resp, err := g.client.SynthesizeSpeech(ctx, &req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: synthesizing speech: %v", domain.ErrExternalService, err)
	}

	return resp.GetAudioContent(), "audio/mpeg", nil
}
