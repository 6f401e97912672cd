package agent

import (
	"errors"
	"fmt"
)

// ErrUnknownTool indicates the model requested a tool that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ValidationError describes a tool invocation that failed schema validation.
type ValidationError struct {
	Tool   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tool %s: parameter %q %s", e.Tool, e.Field, e.Reason)
}
