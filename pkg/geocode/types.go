package geocode

import "errors"

// ErrNotFound indicates no place matched the query.
var ErrNotFound = errors.New("geocode: location not found")

// Result is a resolved place.
type Result struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}
