package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminationRequest(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"that's all", true},
		{"That's All, thank you", true},
		{"thats all from me", true},
		{"please give feedback", true},
		{"END", true},
		{"please stop now", true},
		{"let's finish here", true},
		{"ok I'm done", true},
		{"can we wrap up?", true},
		{"I would recommend Redis for caching", false},
		{"the weekend deploy went fine", false},
		{"we stopped using that framework", false},
		{"I built the backend in Go", false},
		{"we wrote end-to-end tests for every service", false},
		{"once the migration was done, we moved to the new cluster", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTerminationRequest(tt.input))
		})
	}
}

func TestBuildSystemInstruction(t *testing.T) {
	instruction := buildSystemInstruction("Backend Engineer")

	assert.Contains(t, instruction, "Backend Engineer")
	assert.Contains(t, instruction, "one question")
	assert.Contains(t, instruction, "asterisk")
	assert.Contains(t, instruction, "introduce themselves")

	for _, category := range []string{
		"communication",
		"technical/role knowledge",
		"project clarity",
		"problem-solving",
		"strengths",
		"areas of improvement",
	} {
		assert.Contains(t, instruction, category)
	}
}
