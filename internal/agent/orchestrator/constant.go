package orchestrator

// Configuration
const (
	// MaxAgentSteps bounds model↔tool round trips per user turn.
	MaxAgentSteps = 5
)

// System prompt
const (
	SystemPromptAgent = `You are a weather assistant. You answer natural-language questions about current weather and forecasts.

Rules:
1. You do not know coordinates by heart. Call get_coordinates first to resolve a city name, then use the returned latitude/longitude for weather lookups.
2. Coordinates resolved earlier in this conversation are visible in the history — reuse them instead of resolving the same city again.
3. If a tool reports a failure (for example "location not found"), explain the problem to the user or ask a clarifying question. Do not invent weather data.
4. Use celsius unless the user asks for fahrenheit.
5. Answer concisely in plain language and mention the location you used.`

	// TimeContextTemplate is appended to the system prompt so the model
	// can interpret relative dates ("today", "this weekend").
	TimeContextTemplate = "\n\nCurrent date: %s (%s). Interpret relative dates against this."
)

// User-safe fallback messages for terminal failures.
const (
	FallbackModelUnavailable = "Sorry, the assistant is temporarily unavailable. Please try again in a moment."
	FallbackToolLoopExceeded = "Sorry, I couldn't work out an answer in time. Please try rephrasing or narrowing your question."
)
