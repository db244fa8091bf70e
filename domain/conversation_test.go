package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationSeedsSystemTurn(t *testing.T) {
	conv := NewConversation("Backend Engineer", "act as an interviewer")

	turns := conv.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, SystemSpeaker, turns[0].Speaker)
	assert.Equal(t, "act as an interviewer", conv.SystemInstruction())
	assert.Equal(t, "Backend Engineer", conv.Role())
	assert.Equal(t, 0, conv.TurnCount())
}

func TestAppendPreservesOrder(t *testing.T) {
	conv := NewConversation("Backend Engineer", "instruction")
	conv.Append(InterviewerSpeaker, "Tell me about yourself.")
	conv.Append(CandidateSpeaker, "I have 5 years experience.")
	conv.Append(InterviewerSpeaker, "What did you build?")

	turns := conv.Turns()
	require.Len(t, turns, 4)
	assert.Equal(t, "Tell me about yourself.", turns[1].Text)
	assert.Equal(t, "I have 5 years experience.", turns[2].Text)
	assert.Equal(t, "What did you build?", turns[3].Text)
	assert.Equal(t, 3, conv.TurnCount())
}

func TestGeneratorViewExcludesSystemAndMapsRoles(t *testing.T) {
	conv := NewConversation("Backend Engineer", "instruction")
	conv.Append(InterviewerSpeaker, "Tell me about yourself.")
	conv.Append(CandidateSpeaker, "I have 5 years experience.")

	view := conv.GeneratorView()
	require.Len(t, view, 2)
	assert.Equal(t, ModelRole, view[0].Role)
	assert.Equal(t, "Tell me about yourself.", view[0].Content)
	assert.Equal(t, UserRole, view[1].Role)
	assert.Equal(t, "I have 5 years experience.", view[1].Content)
}

func TestTurnsReturnsACopy(t *testing.T) {
	conv := NewConversation("Backend Engineer", "instruction")
	conv.Append(InterviewerSpeaker, "Tell me about yourself.")

	turns := conv.Turns()
	turns[1].Text = "tampered"

	assert.Equal(t, "Tell me about yourself.", conv.Turns()[1].Text)
}
