package meteo

import "time"

const (
	// DefaultBaseURL is the Open-Meteo forecast API endpoint
	DefaultBaseURL = "https://api.open-meteo.com/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 10 * time.Second

	// MaxForecastDays is the Open-Meteo forecast horizon
	MaxForecastDays = 16
)

// Temperature units accepted by the API.
const (
	UnitCelsius    = "celsius"
	UnitFahrenheit = "fahrenheit"
)
