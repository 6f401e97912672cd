package session

import (
	"sync"
	"time"
)

// Role tags a turn's author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall records a model-requested tool invocation.
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// ToolResult records the outcome of a tool invocation, success or
// failure. Failures are ordinary content the model reasons over.
type ToolResult struct {
	Name     string
	Response interface{}
}

// Turn is one role-tagged unit of conversation content.
// Turns are immutable once appended.
type Turn struct {
	Role       Role
	Text       string
	ToolCall   *ToolCall
	ToolResult *ToolResult
	CreatedAt  time.Time
}

// Session is a single conversation thread. Turn order is append-only;
// the store's window policy evicts oldest turns first.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	turns      []Turn
	lastActive time.Time
}

// LastActive returns the time of the most recent append.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
