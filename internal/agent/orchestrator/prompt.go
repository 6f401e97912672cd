package orchestrator

import (
	"fmt"
	"time"

	"weather-agent/internal/session"
	"weather-agent/pkg/llmprovider"
)

// buildRequest assembles the gateway request for the next agent step:
// system prompt with time context, registered tool schemas, and the
// session's windowed history mapped to normalized messages.
func (o *Orchestrator) buildRequest(sessionID string) *llmprovider.Request {
	now := time.Now()
	systemPrompt := SystemPromptAgent + fmt.Sprintf(TimeContextTemplate,
		now.Format("2006-01-02"), now.Weekday().String())

	return &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  llmprovider.RoleSystem,
			Parts: []llmprovider.Part{{Text: systemPrompt}},
		},
		Messages: o.historyMessages(sessionID),
		Tools:    o.registry.ToFunctionDefinitions(),
	}
}

// historyMessages maps the session snapshot to provider messages. Tool
// call and result turns keep their relative order so providers can
// correlate each invocation with its outcome.
func (o *Orchestrator) historyMessages(sessionID string) []llmprovider.Message {
	turns := o.sessions.Snapshot(sessionID)
	messages := make([]llmprovider.Message, 0, len(turns))

	for _, turn := range turns {
		switch {
		case turn.Role == session.RoleUser:
			messages = append(messages, llmprovider.Message{
				Role:  llmprovider.RoleUser,
				Parts: []llmprovider.Part{{Text: turn.Text}},
			})

		case turn.Role == session.RoleAssistant && turn.ToolCall != nil:
			messages = append(messages, llmprovider.Message{
				Role: llmprovider.RoleAssistant,
				Parts: []llmprovider.Part{{FunctionCall: &llmprovider.FunctionCall{
					Name: turn.ToolCall.Name,
					Args: turn.ToolCall.Args,
				}}},
			})

		case turn.Role == session.RoleAssistant:
			messages = append(messages, llmprovider.Message{
				Role:  llmprovider.RoleAssistant,
				Parts: []llmprovider.Part{{Text: turn.Text}},
			})

		case turn.Role == session.RoleTool && turn.ToolResult != nil:
			messages = append(messages, llmprovider.Message{
				Role: llmprovider.RoleTool,
				Parts: []llmprovider.Part{{FunctionResponse: &llmprovider.FunctionResponse{
					Name:     turn.ToolResult.Name,
					Response: turn.ToolResult.Response,
				}}},
			})
		}
	}

	return messages
}
