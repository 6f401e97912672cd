package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Client talks to the Open-Meteo forecast API. The API is keyless.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new weather client. An empty baseURL selects the
// public Open-Meteo endpoint.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Current returns current conditions at the given coordinates
func (c *Client) Current(ctx context.Context, lat, lon float64, unit string) (*CurrentWeather, error) {
	unit = normalizeUnit(unit)

	q := baseQuery(lat, lon, unit)
	q.Set("current_weather", "true")

	var result currentResponse
	if err := c.get(ctx, q, &result); err != nil {
		return nil, err
	}

	return &CurrentWeather{
		Temperature: result.CurrentWeather.Temperature,
		WindSpeed:   result.CurrentWeather.WindSpeed,
		WeatherCode: result.CurrentWeather.WeatherCode,
		Description: Describe(result.CurrentWeather.WeatherCode),
		Unit:        unit,
		Time:        result.CurrentWeather.Time,
	}, nil
}

// Forecast returns a daily forecast. days is clamped to [1, MaxForecastDays].
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int, unit string) (*Forecast, error) {
	unit = normalizeUnit(unit)
	if days < 1 {
		days = 1
	}
	if days > MaxForecastDays {
		days = MaxForecastDays
	}

	q := baseQuery(lat, lon, unit)
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,windspeed_10m_max,weathercode")
	q.Set("forecast_days", strconv.Itoa(days))
	q.Set("timezone", "auto")

	var result forecastResponse
	if err := c.get(ctx, q, &result); err != nil {
		return nil, err
	}

	daily := result.Daily
	forecast := &Forecast{Unit: unit, Days: make([]ForecastDay, 0, len(daily.Time))}
	for i, date := range daily.Time {
		day := ForecastDay{Date: date}
		if i < len(daily.TemperatureMin) {
			day.TemperatureMin = daily.TemperatureMin[i]
		}
		if i < len(daily.TemperatureMax) {
			day.TemperatureMax = daily.TemperatureMax[i]
		}
		if i < len(daily.PrecipitationSum) {
			day.PrecipitationSum = daily.PrecipitationSum[i]
		}
		if i < len(daily.PrecipitationProbability) {
			day.PrecipitationProbability = daily.PrecipitationProbability[i]
		}
		if i < len(daily.WindSpeedMax) {
			day.WindSpeedMax = daily.WindSpeedMax[i]
		}
		if i < len(daily.WeatherCode) {
			day.WeatherCode = daily.WeatherCode[i]
			day.Description = Describe(daily.WeatherCode[i])
		}
		forecast.Days = append(forecast.Days, day)
	}

	return forecast, nil
}

func (c *Client) get(ctx context.Context, q url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s/forecast?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("meteo: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("meteo: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("meteo: API error %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("meteo: failed to decode response: %w", err)
	}

	return nil
}

func baseQuery(lat, lon float64, unit string) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	if unit == UnitFahrenheit {
		q.Set("temperature_unit", UnitFahrenheit)
	}
	return q
}

func normalizeUnit(unit string) string {
	if unit == UnitFahrenheit {
		return UnitFahrenheit
	}
	return UnitCelsius
}
