package tools

import (
	"context"
	"errors"
	"fmt"

	"weather-agent/internal/agent"
	"weather-agent/pkg/geocode"
	pkgLog "weather-agent/pkg/log"
)

// GetCoordinatesTool resolves a city name to coordinates.
type GetCoordinatesTool struct {
	geocoder geocode.IGeocode
	l        pkgLog.Logger
}

// NewGetCoordinatesTool creates a new geocoding tool.
func NewGetCoordinatesTool(geocoder geocode.IGeocode, l pkgLog.Logger) agent.Tool {
	return &GetCoordinatesTool{geocoder: geocoder, l: l}
}

func (t *GetCoordinatesTool) Name() string {
	return "get_coordinates"
}

func (t *GetCoordinatesTool) Description() string {
	return "Resolve a city name to geographic coordinates. Returns the place name, country, latitude, longitude, and timezone. Call this before requesting weather data for a city."
}

func (t *GetCoordinatesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"city": map[string]interface{}{
				"type":        "string",
				"description": "City name, e.g. 'Paris'",
			},
			"country_code": map[string]interface{}{
				"type":        "string",
				"description": "Optional ISO-3166 alpha-2 country code to disambiguate, e.g. 'FR'",
			},
		},
		"required": []string{"city"},
	}
}

func (t *GetCoordinatesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	city, ok := params["city"].(string)
	if !ok || city == "" {
		return nil, fmt.Errorf("city parameter is required")
	}

	countryCode, _ := params["country_code"].(string)

	t.l.Infof(ctx, "get_coordinates: resolving %q (country=%q)", city, countryCode)

	result, err := t.geocoder.Search(ctx, city, countryCode)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			// Phrased for the model: it can ask the user to clarify.
			return nil, fmt.Errorf("location %q not found, ask the user to clarify the city name or country", city)
		}
		return nil, fmt.Errorf("geocoding lookup failed: %w", err)
	}

	return map[string]interface{}{
		"name":         result.Name,
		"country":      result.Country,
		"country_code": result.CountryCode,
		"latitude":     result.Latitude,
		"longitude":    result.Longitude,
		"timezone":     result.Timezone,
	}, nil
}
