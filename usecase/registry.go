package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/careerprep/interview-agent/domain"
)

// SessionRegistry maps opaque session ids to live interview agents. The
// map is the only shared mutable structure in the service; an RWMutex
// guards it, while each agent serializes its own turns, so operations on
// distinct sessions never block each other.
//
// Sessions live until explicitly removed or the process exits. There is no
// idle-timeout eviction yet.
// TODO: evict sessions idle past a configurable deadline.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*InterviewAgent
	gen      domain.Generator
}

func NewSessionRegistry(gen domain.Generator) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*InterviewAgent),
		gen:      gen,
	}
}

// Create starts a new interview for role and returns the session id with
// the opening question. The agent is started before it is published to the
// map, so a generation failure leaves no trace in the registry.
func (r *SessionRegistry) Create(ctx context.Context, role string) (string, string, error) {
	agent := NewInterviewAgent(r.gen, role)

	opening, err := agent.Start(ctx)
	if err != nil {
		return "", "", fmt.Errorf("creating session: %w", err)
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = agent
	r.mu.Unlock()

	return id, opening, nil
}

// Lookup returns the agent bound to id, or ErrSessionNotFound.
func (r *SessionRegistry) Lookup(id string) (*InterviewAgent, error) {
	r.mu.RLock()
	agent, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return agent, nil
}

// Remove drops the session bound to id. Idempotent: removing an unknown id
// reports ErrSessionNotFound, never a crash.
func (r *SessionRegistry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Count returns the number of active sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
