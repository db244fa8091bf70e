package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerprep/interview-agent/domain"
)

// cannedFeedback is what the stub returns once the outbound message asks
// for the final evaluation, mirroring how the live model behaves.
const cannedFeedback = `Here is your evaluation.
Communication: clear. Technical knowledge: solid. Project clarity: good.
Problem-solving: strong. Strengths: depth. Areas of improvement: pacing.
Thank you for your time.`

type stubGenerator struct {
	opening    string
	openingErr error
	chatReply  string
	chatErr    error

	chatCalls   int
	lastSystem  string
	lastHistory []domain.Message
	lastMessage domain.Message
}

func (s *stubGenerator) Generate(ctx context.Context, instruction string, opts domain.GenerateOptions) (string, error) {
	if s.openingErr != nil {
		return "", s.openingErr
	}
	return s.opening, nil
}

func (s *stubGenerator) GenerateChat(ctx context.Context, system string, history []domain.Message, message domain.Message, opts domain.GenerateOptions) (string, error) {
	s.chatCalls++
	s.lastSystem = system
	s.lastHistory = append([]domain.Message(nil), history...)
	s.lastMessage = message

	if s.chatErr != nil {
		return "", s.chatErr
	}
	if strings.Contains(message.Content, "structured evaluation") {
		return cannedFeedback, nil
	}
	return s.chatReply, nil
}

func TestStartRecordsOpeningQuestion(t *testing.T) {
	gen := &stubGenerator{opening: "Hello! Please introduce yourself."}
	agent := NewInterviewAgent(gen, "Backend Engineer")

	reply, err := agent.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello! Please introduce yourself.", reply)
	assert.Equal(t, 1, agent.TurnCount())
}

func TestStartFailurePropagates(t *testing.T) {
	gen := &stubGenerator{openingErr: domain.ErrExternalService}
	agent := NewInterviewAgent(gen, "Backend Engineer")

	_, err := agent.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrExternalService)
	assert.Equal(t, 0, agent.TurnCount())
}

func TestHandleTurnGrowsLogByTwo(t *testing.T) {
	gen := &stubGenerator{opening: "Q1", chatReply: "Q2"}
	agent := NewInterviewAgent(gen, "Backend Engineer")

	_, err := agent.Start(context.Background())
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, turnCount := agent.HandleTurn(context.Background(), "an answer")
		assert.Equal(t, 1+2*i, turnCount)
	}

	transcript := agent.Transcript()
	require.Len(t, transcript, 8)
	assert.Equal(t, domain.SystemSpeaker, transcript[0].Speaker)
	for i := 1; i < len(transcript); i++ {
		want := domain.InterviewerSpeaker
		if i%2 == 0 {
			want = domain.CandidateSpeaker
		}
		assert.Equal(t, want, transcript[i].Speaker, "turn %d", i)
	}
}

func TestHandleTurnSendsHistoryWithoutNewestCandidateTurn(t *testing.T) {
	gen := &stubGenerator{opening: "Q1", chatReply: "Q2"}
	agent := NewInterviewAgent(gen, "Backend Engineer")

	_, err := agent.Start(context.Background())
	require.NoError(t, err)

	agent.HandleTurn(context.Background(), "A1")

	require.Len(t, gen.lastHistory, 1)
	assert.Equal(t, domain.ModelRole, gen.lastHistory[0].Role)
	assert.Equal(t, "Q1", gen.lastHistory[0].Content)
	assert.Equal(t, "A1", gen.lastMessage.Content)
	assert.Contains(t, gen.lastSystem, "Backend Engineer")

	agent.HandleTurn(context.Background(), "A2")

	require.Len(t, gen.lastHistory, 3)
	assert.Equal(t, "Q1", gen.lastHistory[0].Content)
	assert.Equal(t, "A1", gen.lastHistory[1].Content)
	assert.Equal(t, "Q2", gen.lastHistory[2].Content)
	assert.Equal(t, "A2", gen.lastMessage.Content)
}

func TestTerminationPhraseYieldsFeedback(t *testing.T) {
	gen := &stubGenerator{opening: "Q1", chatReply: "Q2"}
	agent := NewInterviewAgent(gen, "Backend Engineer")

	_, err := agent.Start(context.Background())
	require.NoError(t, err)
	agent.HandleTurn(context.Background(), "I have 5 years experience.")

	reply, turnCount := agent.HandleTurn(context.Background(), "that's all")
	assert.Equal(t, 5, turnCount)

	for _, category := range []string{
		"Communication",
		"Technical knowledge",
		"Project clarity",
		"Problem-solving",
		"Strengths",
		"Areas of improvement",
	} {
		assert.Contains(t, reply, category)
	}

	// The candidate's own words stay canonical; only the outbound message
	// carries the directive.
	transcript := agent.Transcript()
	assert.Equal(t, "that's all", transcript[len(transcript)-2].Text)
	assert.Contains(t, gen.lastMessage.Content, "that's all")
	assert.Contains(t, gen.lastMessage.Content, "structured evaluation")
}

func TestGenerationFailureIsAbsorbedAsDialogue(t *testing.T) {
	gen := &stubGenerator{opening: "Q1", chatErr: domain.ErrExternalService}
	agent := NewInterviewAgent(gen, "Backend Engineer")

	_, err := agent.Start(context.Background())
	require.NoError(t, err)

	reply, turnCount := agent.HandleTurn(context.Background(), "A1")
	assert.Equal(t, unavailableReply, reply)
	assert.Equal(t, 3, turnCount)

	// The failed exchange still lives in the log.
	transcript := agent.Transcript()
	assert.Equal(t, "A1", transcript[2].Text)
	assert.Equal(t, unavailableReply, transcript[3].Text)
}

func TestContentFilteredFailureHasOwnReply(t *testing.T) {
	gen := &stubGenerator{opening: "Q1", chatErr: domain.ErrContentFiltered}
	agent := NewInterviewAgent(gen, "Backend Engineer")

	_, err := agent.Start(context.Background())
	require.NoError(t, err)

	reply, _ := agent.HandleTurn(context.Background(), "A1")
	assert.Equal(t, contentFilteredReply, reply)
}

func TestBlankRoleFallsBackToDefault(t *testing.T) {
	gen := &stubGenerator{opening: "Q1"}
	agent := NewInterviewAgent(gen, "   ")

	assert.Equal(t, DefaultRole, agent.Role())
	assert.Contains(t, agent.Transcript()[0].Text, DefaultRole)
}
