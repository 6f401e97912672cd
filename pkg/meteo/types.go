package meteo

// CurrentWeather is the current conditions at a location.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Time        string  `json:"time"`
}

// ForecastDay is one day of a forecast.
type ForecastDay struct {
	Date                     string  `json:"date"`
	TemperatureMin           float64 `json:"temperature_min"`
	TemperatureMax           float64 `json:"temperature_max"`
	PrecipitationSum         float64 `json:"precipitation_sum"`
	PrecipitationProbability int     `json:"precipitation_probability"`
	WindSpeedMax             float64 `json:"wind_speed_max"`
	WeatherCode              int     `json:"weather_code"`
	Description              string  `json:"description"`
}

// Forecast is a multi-day forecast.
type Forecast struct {
	Days []ForecastDay `json:"days"`
	Unit string        `json:"unit"`
}

// ---- Open-Meteo wire format ----

type currentResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

type forecastResponse struct {
	Daily struct {
		Time                     []string  `json:"time"`
		TemperatureMax           []float64 `json:"temperature_2m_max"`
		TemperatureMin           []float64 `json:"temperature_2m_min"`
		PrecipitationSum         []float64 `json:"precipitation_sum"`
		PrecipitationProbability []int     `json:"precipitation_probability_max"`
		WindSpeedMax             []float64 `json:"windspeed_10m_max"`
		WeatherCode              []int     `json:"weathercode"`
	} `json:"daily"`
}
