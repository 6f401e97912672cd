package orchestrator_test

import (
	"context"
	"errors"
	"testing"

	"weather-agent/internal/agent"
	"weather-agent/internal/agent/orchestrator"
	"weather-agent/internal/session"
	"weather-agent/pkg/llmprovider"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// scriptedGateway replays a fixed sequence of responses and records the
// requests it was sent.
type scriptedGateway struct {
	responses []*llmprovider.Response
	err       error
	requests  []*llmprovider.Request
}

func (g *scriptedGateway) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	if len(g.responses) == 0 {
		return nil, errors.New("scripted gateway: no responses left")
	}
	resp := g.responses[0]
	g.responses = g.responses[1:]
	return resp, nil
}

func textResponse(text string) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  llmprovider.RoleAssistant,
		Parts: []llmprovider.Part{{Text: text}},
	}}
}

func callResponse(name string, args map[string]interface{}) *llmprovider.Response {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role: llmprovider.RoleAssistant,
		Parts: []llmprovider.Part{{FunctionCall: &llmprovider.FunctionCall{
			Name: name,
			Args: args,
		}}},
	}}
}

// echoTool succeeds with a canned payload, or fails with failErr.
type echoTool struct {
	name    string
	payload interface{}
	failErr error
	calls   int
}

func (t *echoTool) Name() string        { return t.name }
func (t *echoTool) Description() string { return "test tool" }
func (t *echoTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"city": map[string]interface{}{"type": "string"}},
	}
}
func (t *echoTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	t.calls++
	if t.failErr != nil {
		return nil, t.failErr
	}
	return t.payload, nil
}

func newTestOrchestrator(t *testing.T, gw orchestrator.Gateway, tools ...agent.Tool) (*orchestrator.Orchestrator, *session.Store) {
	t.Helper()

	registry := agent.NewToolRegistry()
	for _, tool := range tools {
		registry.Register(tool)
	}

	store := session.NewStore(session.Config{}, &mockLogger{})
	t.Cleanup(store.Close)

	return orchestrator.New(gw, registry, store, &mockLogger{}, 0), store
}

func TestChatDirectAnswer(t *testing.T) {
	gw := &scriptedGateway{responses: []*llmprovider.Response{
		textResponse("Hello! Ask me about the weather."),
	}}
	o, store := newTestOrchestrator(t, gw)

	answer, err := o.Chat(context.Background(), "s1", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Hello! Ask me about the weather." {
		t.Errorf("unexpected answer: %q", answer)
	}

	turns := store.Snapshot("s1")
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns (user, assistant), got %d", len(turns))
	}
	if turns[0].Role != session.RoleUser || turns[1].Role != session.RoleAssistant {
		t.Errorf("unexpected roles: %s, %s", turns[0].Role, turns[1].Role)
	}
}

func TestChatTwoToolRoundTrips(t *testing.T) {
	coords := &echoTool{name: "get_coordinates", payload: map[string]interface{}{
		"latitude": 48.85, "longitude": 2.35,
	}}
	weather := &echoTool{name: "get_current_weather", payload: map[string]interface{}{
		"temperature": 18.0, "description": "partly cloudy",
	}}

	gw := &scriptedGateway{responses: []*llmprovider.Response{
		callResponse("get_coordinates", map[string]interface{}{"city": "Paris"}),
		callResponse("get_current_weather", map[string]interface{}{"latitude": 48.85, "longitude": 2.35}),
		textResponse("It's 18°C and partly cloudy in Paris."),
	}}
	o, store := newTestOrchestrator(t, gw, coords, weather)

	answer, err := o.Chat(context.Background(), "s1", "weather in Paris?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "It's 18°C and partly cloudy in Paris." {
		t.Errorf("unexpected answer: %q", answer)
	}
	if coords.calls != 1 || weather.calls != 1 {
		t.Errorf("expected each tool called once, got %d and %d", coords.calls, weather.calls)
	}

	// user, call, result, call, result, final answer.
	turns := store.Snapshot("s1")
	if len(turns) != 6 {
		t.Fatalf("expected 6 turns, got %d", len(turns))
	}
	if turns[1].ToolCall == nil || turns[1].ToolCall.Name != "get_coordinates" {
		t.Errorf("turn 1 should record the get_coordinates call: %+v", turns[1])
	}
	if turns[2].ToolResult == nil || turns[2].ToolResult.Name != "get_coordinates" {
		t.Errorf("turn 2 should record the get_coordinates result: %+v", turns[2])
	}
	if turns[5].Text != answer {
		t.Errorf("final turn should hold the answer, got %q", turns[5].Text)
	}

	// Later requests must carry the accumulated history.
	last := gw.requests[len(gw.requests)-1]
	if len(last.Messages) != 5 {
		t.Errorf("final request should see 5 history messages, got %d", len(last.Messages))
	}
	if last.SystemInstruction == nil || last.SystemInstruction.Parts[0].Text == "" {
		t.Error("request should carry a system instruction")
	}
	if len(last.Tools) != 2 {
		t.Errorf("request should carry 2 tool schemas, got %d", len(last.Tools))
	}
}

func TestChatToolFailureRecovered(t *testing.T) {
	failing := &echoTool{name: "get_coordinates", failErr: errors.New(`location "Xyzzyville" not found`)}

	gw := &scriptedGateway{responses: []*llmprovider.Response{
		callResponse("get_coordinates", map[string]interface{}{"city": "Xyzzyville"}),
		textResponse("I couldn't find that place. Could you check the spelling?"),
	}}
	o, store := newTestOrchestrator(t, gw, failing)

	answer, err := o.Chat(context.Background(), "s1", "weather in Xyzzyville?")
	if err != nil {
		t.Fatalf("tool failure must not terminate the chat: %v", err)
	}
	if answer != "I couldn't find that place. Could you check the spelling?" {
		t.Errorf("unexpected answer: %q", answer)
	}

	turns := store.Snapshot("s1")
	if len(turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(turns))
	}
	failure, ok := turns[2].ToolResult.Response.(map[string]interface{})
	if !ok || failure["kind"] != agent.FailureExecutionError {
		t.Errorf("failure should be recorded as an execution_error result: %+v", turns[2].ToolResult)
	}
}

func TestChatUnknownToolRecovered(t *testing.T) {
	gw := &scriptedGateway{responses: []*llmprovider.Response{
		callResponse("get_tide_tables", map[string]interface{}{"city": "Brest"}),
		textResponse("I can't look up tide tables, only weather."),
	}}
	o, store := newTestOrchestrator(t, gw)

	if _, err := o.Chat(context.Background(), "s1", "tides in Brest?"); err != nil {
		t.Fatalf("unknown tool must not terminate the chat: %v", err)
	}

	turns := store.Snapshot("s1")
	failure := turns[2].ToolResult.Response.(map[string]interface{})
	if failure["kind"] != agent.FailureUnknownTool {
		t.Errorf("expected unknown_tool failure, got %v", failure)
	}
}

func TestChatInvalidArgsRecovered(t *testing.T) {
	tool := &echoTool{name: "get_coordinates", payload: map[string]interface{}{"latitude": 48.85}}

	// The model sends an unknown parameter; validation must reject it
	// before the handler runs, and the model gets to retry.
	gw := &scriptedGateway{responses: []*llmprovider.Response{
		callResponse("get_coordinates", map[string]interface{}{"town": "Paris"}),
		textResponse("Let me rephrase that."),
	}}
	o, store := newTestOrchestrator(t, gw, tool)

	if _, err := o.Chat(context.Background(), "s1", "weather in Paris?"); err != nil {
		t.Fatalf("validation failure must not terminate the chat: %v", err)
	}
	if tool.calls != 0 {
		t.Errorf("handler must not run on invalid args, ran %d times", tool.calls)
	}

	turns := store.Snapshot("s1")
	failure := turns[2].ToolResult.Response.(map[string]interface{})
	if failure["kind"] != agent.FailureValidationError {
		t.Errorf("expected validation_error failure, got %v", failure)
	}
}

func TestChatModelUnavailable(t *testing.T) {
	gw := &scriptedGateway{err: errors.New("all providers down")}
	o, store := newTestOrchestrator(t, gw)

	answer, err := o.Chat(context.Background(), "s1", "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if orchestrator.KindOf(err) != orchestrator.KindModelUnavailable {
		t.Errorf("expected model_unavailable, got %q", orchestrator.KindOf(err))
	}
	if answer != orchestrator.FallbackModelUnavailable {
		t.Errorf("expected fallback text, got %q", answer)
	}

	// The user turn is retained even when the model call fails.
	turns := store.Snapshot("s1")
	if len(turns) != 1 || turns[0].Role != session.RoleUser {
		t.Errorf("expected only the user turn retained, got %+v", turns)
	}
}

func TestChatEmptyResponse(t *testing.T) {
	gw := &scriptedGateway{responses: []*llmprovider.Response{
		{Content: llmprovider.Message{Role: llmprovider.RoleAssistant}},
	}}
	o, _ := newTestOrchestrator(t, gw)

	_, err := o.Chat(context.Background(), "s1", "hi")
	if orchestrator.KindOf(err) != orchestrator.KindModelUnavailable {
		t.Errorf("empty response should classify as model_unavailable, got %v", err)
	}
	if !errors.Is(err, llmprovider.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse in the chain, got %v", err)
	}
}

func TestChatToolLoopBounded(t *testing.T) {
	tool := &echoTool{name: "get_coordinates", payload: map[string]interface{}{"latitude": 0.0}}

	// The gateway keeps requesting tools and never produces an answer.
	responses := make([]*llmprovider.Response, 0, orchestrator.MaxAgentSteps+1)
	for i := 0; i <= orchestrator.MaxAgentSteps; i++ {
		responses = append(responses, callResponse("get_coordinates", map[string]interface{}{"city": "Paris"}))
	}
	gw := &scriptedGateway{responses: responses}
	o, _ := newTestOrchestrator(t, gw, tool)

	answer, err := o.Chat(context.Background(), "s1", "weather?")
	if orchestrator.KindOf(err) != orchestrator.KindToolLoopExceeded {
		t.Fatalf("expected tool_loop_exceeded, got %v", err)
	}
	if answer != orchestrator.FallbackToolLoopExceeded {
		t.Errorf("expected fallback text, got %q", answer)
	}
	if len(gw.requests) != orchestrator.MaxAgentSteps {
		t.Errorf("expected exactly %d gateway calls, got %d", orchestrator.MaxAgentSteps, len(gw.requests))
	}
}

func TestChatHistoryWindowedInPrompt(t *testing.T) {
	gw := &scriptedGateway{responses: []*llmprovider.Response{
		textResponse("a"), textResponse("b"),
	}}

	registry := agent.NewToolRegistry()
	store := session.NewStore(session.Config{Window: 3}, &mockLogger{})
	t.Cleanup(store.Close)
	o := orchestrator.New(gw, registry, store, &mockLogger{}, 0)

	if _, err := o.Chat(context.Background(), "s1", "first question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := o.Chat(context.Background(), "s1", "second question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Window 3 keeps: assistant "a", user "second question", assistant "b".
	// The second gateway call saw the first exchange plus the new user turn.
	second := gw.requests[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 windowed messages, got %d", len(second.Messages))
	}
	if second.Messages[2].Parts[0].Text != "second question" {
		t.Errorf("newest user turn missing from prompt: %+v", second.Messages)
	}
	if store.Len("s1") != 3 {
		t.Errorf("store should hold 3 turns after eviction, got %d", store.Len("s1"))
	}
}
