package geocode

import "context"

// IGeocode defines the interface for the geocoding client.
// Implementations are safe for concurrent use.
type IGeocode interface {
	// Search resolves a city name to coordinates. countryCode is an
	// optional ISO-3166 alpha-2 filter. Returns ErrNotFound when no
	// place matches.
	Search(ctx context.Context, name, countryCode string) (*Result, error)
}
