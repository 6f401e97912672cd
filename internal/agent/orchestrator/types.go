package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"weather-agent/pkg/llmprovider"
)

// Gateway is the opaque language-model call boundary: prompt, tool
// schemas and history in; text or tool-call requests out.
// *llmprovider.Manager satisfies it.
type Gateway interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// state names the orchestration loop's positions. awaitingModel and
// executingTool alternate; responding and failed are terminal for one
// Chat call.
type state int

const (
	stateAwaitingModel state = iota
	stateExecutingTool
	stateResponding
	stateFailed
)

// ErrorKind classifies terminal chat failures for logging and the
// transport layer. Tool-level failures never surface here; they are
// recovered into conversation content.
type ErrorKind string

const (
	KindModelUnavailable ErrorKind = "model_unavailable"
	KindToolLoopExceeded ErrorKind = "tool_loop_exceeded"
)

// ChatError is the typed terminal error returned by Chat.
type ChatError struct {
	Kind ErrorKind
	Err  error
}

func (e *ChatError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error classification from a Chat error.
// Returns an empty kind for nil or foreign errors.
func KindOf(err error) ErrorKind {
	var chatErr *ChatError
	if errors.As(err, &chatErr) {
		return chatErr.Kind
	}
	return ""
}
