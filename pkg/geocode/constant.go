package geocode

import "time"

const (
	// DefaultBaseURL is the Open-Meteo geocoding API endpoint
	DefaultBaseURL = "https://geocoding-api.open-meteo.com/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 10 * time.Second
)
