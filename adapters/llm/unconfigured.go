package llm

import (
	"context"

	"github.com/careerprep/interview-agent/domain"
)

// Unconfigured is the generator wired when no credential is present. The
// process still serves its endpoints; every generation call reports a
// configuration failure instead.
type Unconfigured struct{}

func NewUnconfigured() domain.Generator {
	return Unconfigured{}
}

func (Unconfigured) Generate(ctx context.Context, instruction string, opts domain.GenerateOptions) (string, error) {
	return "", domain.ErrNotConfigured
}

func (Unconfigured) GenerateChat(ctx context.Context, system string, history []domain.Message, message domain.Message, opts domain.GenerateOptions) (string, error) {
	return "", domain.ErrNotConfigured
}
