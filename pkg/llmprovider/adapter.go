package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"

	"weather-agent/pkg/deepseek"
	"weather-agent/pkg/gemini"
)

// GeminiAdapter adapts pkg/gemini to the Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Tools:             convertToGeminiTools(req.Tools),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      convertFromGeminiContent(resp.Content),
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns the model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// Gemini wants role "model" for assistant turns and "function" for tool results.
func toGeminiRole(role string) string {
	switch role {
	case RoleAssistant:
		return "model"
	case RoleTool:
		return "function"
	default:
		return "user"
	}
}

func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	return &gemini.Content{
		Role:  toGeminiRole(msg.Role),
		Parts: convertToGeminiParts(msg.Parts),
	}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i, msg := range msgs {
		contents[i] = gemini.Content{
			Role:  toGeminiRole(msg.Role),
			Parts: convertToGeminiParts(msg.Parts),
		}
	}
	return contents
}

func convertToGeminiParts(parts []Part) []gemini.Part {
	geminiParts := make([]gemini.Part, len(parts))
	for i, p := range parts {
		geminiParts[i] = gemini.Part{Text: p.Text}
		if p.FunctionCall != nil {
			geminiParts[i].FunctionCall = &gemini.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			geminiParts[i].FunctionResponse = &gemini.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return geminiParts
}

func convertToGeminiTools(tools []Tool) []gemini.Tool {
	geminiTools := make([]gemini.Tool, len(tools))
	for i, t := range tools {
		geminiTools[i] = gemini.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return geminiTools
}

func convertFromGeminiContent(content gemini.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return Message{Role: RoleAssistant, Parts: parts}
}

// DeepSeekAdapter adapts pkg/deepseek to the Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	dsReq := &deepseek.Request{
		Messages:    convertToDeepSeekMessages(req),
		Tools:       convertToDeepSeekTools(req.Tools),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	content, err := convertFromDeepSeekMessage(resp.Choices[0].Message)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      content,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

// Model returns the model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

// convertToDeepSeekMessages flattens normalized messages into the OpenAI dialect.
// Tool call IDs are synthesized in walk order; a tool-result message references
// the most recent call with the same function name, which matches how the
// orchestrator appends call and result turns back to back.
func convertToDeepSeekMessages(req *Request) []deepseek.Message {
	var messages []deepseek.Message

	if req.SystemInstruction != nil {
		messages = append(messages, deepseek.Message{
			Role:    deepseekRoleSystem,
			Content: partsText(req.SystemInstruction.Parts),
		})
	}

	callSeq := 0
	lastCallID := make(map[string]string)

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleAssistant:
			dsMsg := deepseek.Message{
				Role:    deepseekRoleAssistant,
				Content: partsText(msg.Parts),
			}
			for _, p := range msg.Parts {
				if p.FunctionCall == nil {
					continue
				}
				id := fmt.Sprintf("call_%d", callSeq)
				callSeq++
				lastCallID[p.FunctionCall.Name] = id

				args, _ := json.Marshal(p.FunctionCall.Args)
				dsMsg.ToolCalls = append(dsMsg.ToolCalls, deepseek.ToolCall{
					ID:   id,
					Type: "function",
					Function: deepseek.ToolCallFunction{
						Name:      p.FunctionCall.Name,
						Arguments: string(args),
					},
				})
			}
			messages = append(messages, dsMsg)

		case RoleTool:
			for _, p := range msg.Parts {
				if p.FunctionResponse == nil {
					continue
				}
				payload, _ := json.Marshal(p.FunctionResponse.Response)
				messages = append(messages, deepseek.Message{
					Role:       deepseekRoleTool,
					Name:       p.FunctionResponse.Name,
					ToolCallID: lastCallID[p.FunctionResponse.Name],
					Content:    string(payload),
				})
			}

		default:
			messages = append(messages, deepseek.Message{
				Role:    deepseekRoleUser,
				Content: partsText(msg.Parts),
			})
		}
	}

	return messages
}

const (
	deepseekRoleSystem    = "system"
	deepseekRoleUser      = "user"
	deepseekRoleAssistant = "assistant"
	deepseekRoleTool      = "tool"
)

func partsText(parts []Part) string {
	var text string
	for _, p := range parts {
		text += p.Text
	}
	return text
}

func convertToDeepSeekTools(tools []Tool) []deepseek.Tool {
	if len(tools) == 0 {
		return nil
	}
	dsTools := make([]deepseek.Tool, len(tools))
	for i, t := range tools {
		dsTools[i] = deepseek.Tool{
			Type: "function",
			Function: deepseek.Function{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return dsTools
}

func convertFromDeepSeekMessage(msg deepseek.Message) (Message, error) {
	var parts []Part

	if msg.Content != "" {
		parts = append(parts, Part{Text: msg.Content})
	}

	for _, call := range msg.ToolCalls {
		args := make(map[string]interface{})
		if call.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				return Message{}, fmt.Errorf("malformed tool call arguments for %s: %w", call.Function.Name, err)
			}
		}
		parts = append(parts, Part{FunctionCall: &FunctionCall{
			Name: call.Function.Name,
			Args: args,
		}})
	}

	return Message{Role: RoleAssistant, Parts: parts}, nil
}
