package agent

import "context"

// Failure kinds carried in tool results. Stable identifiers: they end
// up in conversation content and in logs.
const (
	FailureUnknownTool     = "unknown_tool"
	FailureValidationError = "validation_error"
	FailureExecutionError  = "execution_error"
)

// Failure is a typed tool failure the model can reason over.
type Failure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Result is the outcome of dispatching one tool invocation.
type Result struct {
	Tool    string
	Ok      bool
	Payload interface{}
	Failure *Failure
}

// Response returns the payload to feed back to the model: the success
// payload, or an error object describing the failure.
func (r Result) Response() interface{} {
	if r.Ok {
		return r.Payload
	}
	return map[string]interface{}{
		"error": r.Failure.Message,
		"kind":  r.Failure.Kind,
	}
}

// Dispatch resolves, validates, and executes a tool invocation.
// Every failure mode is converted into a typed failure Result rather
// than an error: tool failure is information the model reacts to, not
// a process fault. Malformed parameters never reach the handler.
func (r *ToolRegistry) Dispatch(ctx context.Context, name string, args map[string]interface{}) Result {
	tool, ok := r.Get(name)
	if !ok {
		return Result{Tool: name, Failure: &Failure{
			Kind:    FailureUnknownTool,
			Message: "tool not found: " + name,
		}}
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	if verr := Validate(tool, args); verr != nil {
		return Result{Tool: name, Failure: &Failure{
			Kind:    FailureValidationError,
			Message: verr.Error(),
		}}
	}

	payload, err := tool.Execute(ctx, args)
	if err != nil {
		return Result{Tool: name, Failure: &Failure{
			Kind:    FailureExecutionError,
			Message: err.Error(),
		}}
	}

	return Result{Tool: name, Ok: true, Payload: payload}
}
