package tools

import (
	"context"
	"fmt"

	"weather-agent/internal/agent"
	pkgLog "weather-agent/pkg/log"
	"weather-agent/pkg/meteo"
)

// GetWeatherForecastTool fetches a daily forecast for coordinates.
type GetWeatherForecastTool struct {
	weather meteo.IMeteo
	l       pkgLog.Logger
}

// NewGetWeatherForecastTool creates a new forecast tool.
func NewGetWeatherForecastTool(weather meteo.IMeteo, l pkgLog.Logger) agent.Tool {
	return &GetWeatherForecastTool{weather: weather, l: l}
}

func (t *GetWeatherForecastTool) Name() string {
	return "get_weather_forecast"
}

func (t *GetWeatherForecastTool) Description() string {
	return "Get a daily weather forecast (temperature range, precipitation, wind) for geographic coordinates, up to 16 days ahead."
}

func (t *GetWeatherForecastTool) Parameters() map[string]interface{} {
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
			"days": map[string]interface{}{
				"type":        "integer",
				"description": "Number of forecast days (1-16)",
			},
			"unit": map[string]interface{}{
				"type":        "string",
				"description": "Temperature unit: 'celsius' (default) or 'fahrenheit'",
			},
		},
		"required": []string{"latitude", "longitude", "days"},
	}
}

type forecastInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Days      int     `json:"days"`
	Unit      string  `json:"unit"`
}

func (t *GetWeatherForecastTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	var input forecastInput
	if err := decodeParams(params, &input); err != nil {
		return nil, err
	}

	t.l.Infof(ctx, "get_weather_forecast: lat=%.4f lon=%.4f days=%d unit=%s",
		input.Latitude, input.Longitude, input.Days, input.Unit)

	forecast, err := t.weather.Forecast(ctx, input.Latitude, input.Longitude, input.Days, input.Unit)
	if err != nil {
		return nil, fmt.Errorf("weather service unavailable: %w", err)
	}

	return forecast, nil
}
