package domain

// Speaker identifies who produced a Turn.
type Speaker string

const (
	SystemSpeaker      Speaker = "system"
	InterviewerSpeaker Speaker = "interviewer"
	CandidateSpeaker   Speaker = "candidate"
)

// Turn is one unit of dialogue. The turn log is append-only: a recorded
// turn is never mutated or removed.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Conversation owns the ordered turn log for one interview plus the role
// the candidate is interviewing for. The first turn is always the system
// instruction; it seeds the generator's persona and is never sent as a
// conversational message.
type Conversation struct {
	role  string
	turns []Turn
}

func NewConversation(role, systemInstruction string) *Conversation {
	return &Conversation{
		role:  role,
		turns: []Turn{{Speaker: SystemSpeaker, Text: systemInstruction}},
	}
}

func (c *Conversation) Role() string { return c.role }

// SystemInstruction returns the seeding instruction (the first turn).
func (c *Conversation) SystemInstruction() string {
	return c.turns[0].Text
}

// Append records a turn at the end of the log.
func (c *Conversation) Append(speaker Speaker, text string) {
	c.turns = append(c.turns, Turn{Speaker: speaker, Text: text})
}

// TurnCount is the number of conversational turns, excluding the system
// instruction turn.
func (c *Conversation) TurnCount() int {
	return len(c.turns) - 1
}

// Turns returns a copy of the full log, system instruction included.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// GeneratorView derives the two-party history the external generator
// expects: the system turn is dropped, interviewer turns become model
// messages and candidate turns become user messages. The view is computed
// from the canonical log on every call, never kept as a second copy.
func (c *Conversation) GeneratorView() []Message {
	view := make([]Message, 0, len(c.turns)-1)
	for _, t := range c.turns[1:] {
		role := ModelRole
		if t.Speaker == CandidateSpeaker {
			role = UserRole
		}
		view = append(view, Message{Role: role, Content: t.Text})
	}
	return view
}
