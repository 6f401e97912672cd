package orchestrator

import (
	"context"

	"weather-agent/internal/session"
	"weather-agent/pkg/llmprovider"
)

// Chat runs one user turn through the agent loop.
//
// The loop is a small state machine: awaitingModel asks the gateway for
// the next step; executingTool dispatches requested invocations and
// feeds results back as tool turns; responding returns the final text;
// failed returns a user-safe fallback message together with a typed
// *ChatError. Tool and validation failures never terminate the loop —
// they become conversation content the model can react to.
func (o *Orchestrator) Chat(ctx context.Context, sessionID, userMessage string) (string, error) {
	// The user turn is appended before anything can fail and is never
	// rolled back.
	o.sessions.Append(sessionID, session.Turn{Role: session.RoleUser, Text: userMessage})

	st := stateAwaitingModel
	steps := 0
	var pending []*llmprovider.FunctionCall
	var finalText string
	var fallback string
	var failure *ChatError

	for {
		switch st {
		case stateAwaitingModel:
			if steps >= o.maxSteps {
				o.l.Warnf(ctx, "agent exceeded max steps (%d) session=%s", o.maxSteps, sessionID)
				fallback, failure = FallbackToolLoopExceeded, &ChatError{Kind: KindToolLoopExceeded}
				st = stateFailed
				continue
			}
			steps++
			o.l.Infof(ctx, "agent step %d/%d session=%s", steps, o.maxSteps, sessionID)

			resp, err := o.llm.GenerateContent(ctx, o.buildRequest(sessionID))
			if err != nil {
				o.l.Errorf(ctx, "agent gateway failure session=%s: %v", sessionID, err)
				fallback, failure = FallbackModelUnavailable, &ChatError{Kind: KindModelUnavailable, Err: err}
				st = stateFailed
				continue
			}

			pending = resp.FunctionCalls()
			if len(pending) > 0 {
				st = stateExecutingTool
				continue
			}

			finalText = resp.Text()
			if finalText == "" {
				o.l.Errorf(ctx, "agent empty gateway response session=%s", sessionID)
				fallback, failure = FallbackModelUnavailable, &ChatError{Kind: KindModelUnavailable, Err: llmprovider.ErrEmptyResponse}
				st = stateFailed
				continue
			}
			st = stateResponding

		case stateExecutingTool:
			for _, call := range pending {
				o.l.Infof(ctx, "agent calling tool %s session=%s args=%v", call.Name, sessionID, call.Args)

				// Record the model's intent, then the outcome. Both are
				// ordinary turns so later prompts carry everything the
				// model has already learned this conversation.
				o.sessions.Append(sessionID, session.Turn{
					Role:     session.RoleAssistant,
					ToolCall: &session.ToolCall{Name: call.Name, Args: call.Args},
				})

				result := o.registry.Dispatch(ctx, call.Name, call.Args)
				if !result.Ok {
					o.l.Warnf(ctx, "agent tool %s failed session=%s kind=%s: %s",
						call.Name, sessionID, result.Failure.Kind, result.Failure.Message)
				}

				o.sessions.Append(sessionID, session.Turn{
					Role:       session.RoleTool,
					ToolResult: &session.ToolResult{Name: call.Name, Response: result.Response()},
				})
			}
			pending = nil
			st = stateAwaitingModel

		case stateResponding:
			o.sessions.Append(sessionID, session.Turn{Role: session.RoleAssistant, Text: finalText})
			o.l.Infof(ctx, "agent finished at step %d session=%s", steps, sessionID)
			return finalText, nil

		case stateFailed:
			return fallback, failure
		}
	}
}

// Sessions exposes the session store for callers that need read-only
// history access.
func (o *Orchestrator) Sessions() *session.Store {
	return o.sessions
}
