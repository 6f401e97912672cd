package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"weather-agent/internal/agent"
	pkgLog "weather-agent/pkg/log"
	"weather-agent/pkg/meteo"
)

// GetCurrentWeatherTool fetches current conditions for coordinates.
type GetCurrentWeatherTool struct {
	weather meteo.IMeteo
	l       pkgLog.Logger
}

// NewGetCurrentWeatherTool creates a new current-weather tool.
func NewGetCurrentWeatherTool(weather meteo.IMeteo, l pkgLog.Logger) agent.Tool {
	return &GetCurrentWeatherTool{weather: weather, l: l}
}

func (t *GetCurrentWeatherTool) Name() string {
	return "get_current_weather"
}

func (t *GetCurrentWeatherTool) Description() string {
	return "Get current weather conditions (temperature, wind, description) for geographic coordinates."
}

func (t *GetCurrentWeatherTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"latitude": map[string]interface{}{
				"type":        "number",
				"description": "Latitude in decimal degrees",
			},
			"longitude": map[string]interface{}{
				"type":        "number",
				"description": "Longitude in decimal degrees",
			},
			"unit": map[string]interface{}{
				"type":        "string",
				"description": "Temperature unit: 'celsius' (default) or 'fahrenheit'",
			},
		},
		"required": []string{"latitude", "longitude"},
	}
}

type currentWeatherInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Unit      string  `json:"unit"`
}

func (t *GetCurrentWeatherTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	var input currentWeatherInput
	if err := decodeParams(params, &input); err != nil {
		return nil, err
	}

	t.l.Infof(ctx, "get_current_weather: lat=%.4f lon=%.4f unit=%s", input.Latitude, input.Longitude, input.Unit)

	current, err := t.weather.Current(ctx, input.Latitude, input.Longitude, input.Unit)
	if err != nil {
		return nil, fmt.Errorf("weather service unavailable: %w", err)
	}

	return current, nil
}

// decodeParams round-trips a params map through JSON into a typed input.
func decodeParams(params map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}
	return nil
}
