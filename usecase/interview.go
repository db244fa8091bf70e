package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/careerprep/interview-agent/domain"
	"github.com/careerprep/interview-agent/utils/log"
)

// Sampling parameters for every generation call.
var generateOptions = domain.GenerateOptions{
	Temperature:     0.7,
	MaxOutputTokens: 1024,
}

// contentFilteredReply is what the interviewer says when generation
// succeeded but the reply was withheld.
const contentFilteredReply = "Sorry, I can't respond to that. Could we get back to the interview?"

// unavailableReply is what the interviewer says on any other generation
// failure. Detail stays in the logs, never in the dialogue.
const unavailableReply = "I'm having trouble continuing the interview right now. Please try again in a moment."

// InterviewAgent drives one mock interview: it owns the conversation log
// and exchanges candidate answers for interviewer questions through the
// generator. A mutex serializes turns so at most one is in flight per
// session and the log order is never corrupted.
type InterviewAgent struct {
	mu   sync.Mutex
	gen  domain.Generator
	conv *domain.Conversation
}

func NewInterviewAgent(gen domain.Generator, role string) *InterviewAgent {
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	return &InterviewAgent{
		gen:  gen,
		conv: domain.NewConversation(role, buildSystemInstruction(role)),
	}
}

// Start issues the opening turn: the system instruction alone goes to the
// generator, with no history, and the reply becomes the first interviewer
// turn. This is the only call that can fail outward — the registry needs a
// typed error to roll back a session that never produced a question.
func (a *InterviewAgent) Start(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	reply, err := a.gen.Generate(ctx, a.conv.SystemInstruction(), generateOptions)
	if err != nil {
		return "", fmt.Errorf("starting interview: %w", err)
	}

	a.conv.Append(domain.InterviewerSpeaker, reply)
	return reply, nil
}

// HandleTurn records the candidate's answer and exchanges it for the next
// interviewer turn. Generation failures are absorbed into the dialogue as
// displayable text — the session is never dropped mid-interview — so the
// call itself cannot fail. Every call grows the log by exactly two turns.
func (a *InterviewAgent) HandleTurn(ctx context.Context, candidateText string) (reply string, turnCount int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.conv.Append(domain.CandidateSpeaker, candidateText)

	outbound := candidateText
	if IsTerminationRequest(candidateText) {
		outbound = candidateText + "\n\n" + feedbackDirective
	}

	view := a.conv.GeneratorView()
	history := view[:len(view)-1]
	message := domain.Message{Role: domain.UserRole, Content: outbound}

	reply, err := a.gen.GenerateChat(ctx, a.conv.SystemInstruction(), history, message, generateOptions)
	if err != nil {
		log.WithCtx(ctx).Error("generation failed mid-interview", zap.Error(err))
		reply = displayableFailure(err)
	}

	a.conv.Append(domain.InterviewerSpeaker, reply)
	return reply, a.conv.TurnCount()
}

// Role returns the role this interview targets.
func (a *InterviewAgent) Role() string {
	return a.conv.Role()
}

// TurnCount returns the number of conversational turns so far.
func (a *InterviewAgent) TurnCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conv.TurnCount()
}

// Transcript returns a copy of the full turn log.
func (a *InterviewAgent) Transcript() []domain.Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conv.Turns()
}

func displayableFailure(err error) string {
	switch {
	case errors.Is(err, domain.ErrContentFiltered):
		return contentFilteredReply
	case errors.Is(err, domain.ErrNotConfigured):
		return "The interview service is not fully configured. Please contact the operator."
	default:
		return unavailableReply
	}
}
