package meteo

import "context"

// IMeteo defines the interface for the weather data client.
// Implementations are safe for concurrent use.
type IMeteo interface {
	// Current returns current conditions at the given coordinates.
	Current(ctx context.Context, lat, lon float64, unit string) (*CurrentWeather, error)

	// Forecast returns a daily forecast for up to MaxForecastDays days.
	Forecast(ctx context.Context, lat, lon float64, days int, unit string) (*Forecast, error)
}
