package orchestrator

import (
	"weather-agent/internal/agent"
	"weather-agent/internal/session"
	pkgLog "weather-agent/pkg/log"
)

// Orchestrator runs the agent loop: it turns a user message plus the
// session's recent history into tool invocations and a final answer.
type Orchestrator struct {
	llm      Gateway
	registry *agent.ToolRegistry
	sessions *session.Store
	l        pkgLog.Logger
	maxSteps int
}

// New creates a new Orchestrator. maxSteps <= 0 selects MaxAgentSteps.
func New(llm Gateway, registry *agent.ToolRegistry, sessions *session.Store, l pkgLog.Logger, maxSteps int) *Orchestrator {
	if maxSteps <= 0 {
		maxSteps = MaxAgentSteps
	}
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		sessions: sessions,
		l:        l,
		maxSteps: maxSteps,
	}
}
