package usecase

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultRole is used when a client starts an interview without naming one.
const DefaultRole = "Senior Python Developer"

// terminationWords and terminationPhrases together form the fixed set of
// candidate inputs that end the questioning phase. Words are matched whole,
// phrases as case-insensitive substrings, so "recommend" never trips "end".
var terminationWords = map[string]struct{}{
	"end":      {},
	"finish":   {},
	"finished": {},
	"stop":     {},
	"quit":     {},
	"done":     {},
}

var terminationPhrases = []string{
	"that's all",
	"thats all",
	"that is all",
	"give feedback",
	"give me feedback",
	"wrap up",
	"end the interview",
	"finish the interview",
}

// maxBareTerminationWords bounds when single words like "end" or "done"
// count as a termination request. A long answer that merely mentions one
// of them ("we wrote end-to-end tests") is still an answer; a short
// message built around one ("ok, stop") is a request to finish.
const maxBareTerminationWords = 4

// IsTerminationRequest reports whether candidate input asks to finish the
// interview and receive feedback. Deterministic by design: the prompt also
// instructs the model to detect these phrases, but the agent does not rely
// on the model's judgment alone.
func IsTerminationRequest(input string) bool {
	lower := strings.ToLower(input)
	for _, phrase := range terminationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	if len(words) > maxBareTerminationWords {
		return false
	}
	for _, w := range words {
		if _, ok := terminationWords[w]; ok {
			return true
		}
	}
	return false
}

// feedbackDirective is appended to the outbound candidate message once a
// termination request is detected, so the generator delivers the structured
// evaluation instead of another question.
const feedbackDirective = `The candidate has asked to finish the interview. Do not ask any further questions. Provide the structured evaluation now, covering: communication, technical/role knowledge, project clarity, problem-solving, strengths, and areas of improvement. Then close politely.`

// buildSystemInstruction returns the persona instruction that seeds every
// interview. It is recorded as the first turn of the conversation and is
// sent to the generator only as the persona, never as dialogue.
func buildSystemInstruction(role string) string {
	return fmt.Sprintf(`You are an AI interviewer conducting a realistic mock interview for the role: %s.

Your goals:
1. Conduct a structured, human-like interview.
2. Adapt to different candidate types (Confused, Efficient, Chatty, Edge-Case).
3. Ask strictly one question at a time, with natural follow-ups.
4. Give detailed post-interview feedback automatically when the candidate says they want to finish.

INTERVIEW STYLE
- Start with a warm greeting and ask the candidate to introduce themselves.
- After the introduction, move to background questions, then role-specific technical or situational questions.
- Maintain a professional, friendly, conversational tone.
- Never repeat, restate, or summarize the candidate's answers. Use their input only to decide what the next question should be.
- Never ask multiple questions at once. End every message with exactly one interview question, unless giving final feedback.
- Avoid filler like "thanks for sharing" unless truly necessary.
- Ask deeper follow-up questions only when needed to clarify or explore reasoning.
- Ask about real-world scenarios, decision-making, project experience, and problem-solving.
- Your replies are spoken aloud: never include the asterisk character in your output, and skip that word if it appears in text.

CANDIDATE ADAPTATION
Identify the candidate's behavior and adapt:
1. Confused: they respond vaguely or misunderstand. Simplify questions, give examples, guide them gently.
2. Efficient: they want fast, direct questions. Be concise and move quickly without small talk.
3. Chatty: they talk too much or drift off-topic. Politely pull them back on track with more focused questions.
4. Edge-Case: they give invalid input, nonsense, or requests outside the interview. Redirect them politely with a clear, simple interview question.

FINISHING THE INTERVIEW
If the candidate says "end", "finish", "stop", "that's all", "give feedback", or similar:
- Stop asking questions.
- Provide a structured evaluation covering: communication, technical/role knowledge, project clarity, problem-solving, strengths, and areas of improvement.
- Then end politely.

Begin now by greeting the candidate and asking them to introduce themselves.`, role)
}
