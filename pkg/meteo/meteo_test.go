package meteo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"weather-agent/pkg/meteo"
)

func TestCurrent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("current_weather") != "true" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("latitude") == "0" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"current_weather": {"temperature": 18.2, "windspeed": 11.5, "weathercode": 2, "time": "2026-08-29T12:00"}}`))
	}))
	defer ts.Close()

	client := meteo.New(ts.URL)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		got, err := client.Current(ctx, 48.85, 2.35, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Temperature != 18.2 {
			t.Errorf("unexpected temperature: %v", got.Temperature)
		}
		if got.Description != "partly cloudy" {
			t.Errorf("unexpected description: %s", got.Description)
		}
		if got.Unit != meteo.UnitCelsius {
			t.Errorf("expected celsius default, got %s", got.Unit)
		}
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.Current(ctx, 0, 0, "")
		if err == nil {
			t.Fatal("expected error from 500 response")
		}
	})
}

func TestForecast(t *testing.T) {
	var lastQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.Query()
		w.Write([]byte(`{"daily": {
			"time": ["2026-08-29", "2026-08-30"],
			"temperature_2m_max": [24.1, 21.7],
			"temperature_2m_min": [14.3, 12.9],
			"precipitation_sum": [0.0, 4.2],
			"precipitation_probability_max": [5, 65],
			"windspeed_10m_max": [15.0, 22.3],
			"weathercode": [0, 61]
		}}`))
	}))
	defer ts.Close()

	client := meteo.New(ts.URL)
	ctx := context.Background()

	t.Run("two days", func(t *testing.T) {
		got, err := client.Forecast(ctx, 48.85, 2.35, 2, meteo.UnitFahrenheit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Days) != 2 {
			t.Fatalf("expected 2 days, got %d", len(got.Days))
		}
		if got.Days[1].Description != "slight rain" {
			t.Errorf("unexpected description: %s", got.Days[1].Description)
		}
		if got.Days[1].PrecipitationProbability != 65 {
			t.Errorf("unexpected precipitation probability: %d", got.Days[1].PrecipitationProbability)
		}
		if lastQuery["temperature_unit"][0] != "fahrenheit" {
			t.Errorf("expected fahrenheit query param")
		}
	})

	t.Run("days clamped", func(t *testing.T) {
		if _, err := client.Forecast(ctx, 48.85, 2.35, 99, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastQuery["forecast_days"][0] != "16" {
			t.Errorf("expected forecast_days clamped to 16, got %s", lastQuery["forecast_days"][0])
		}

		if _, err := client.Forecast(ctx, 48.85, 2.35, 0, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lastQuery["forecast_days"][0] != "1" {
			t.Errorf("expected forecast_days clamped to 1, got %s", lastQuery["forecast_days"][0])
		}
	})
}

func TestEndpointPath(t *testing.T) {
	// The client owns the /forecast segment: a base URL ending at /v1
	// must produce requests against /v1/forecast, not /v1/forecast/forecast.
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Query().Get("current_weather") == "true" {
			w.Write([]byte(`{"current_weather": {"temperature": 18.2, "windspeed": 11.5, "weathercode": 2, "time": "2026-08-29T12:00"}}`))
			return
		}
		w.Write([]byte(`{"daily": {"time": ["2026-08-29"], "temperature_2m_max": [24.1], "temperature_2m_min": [14.3], "precipitation_sum": [0.0], "precipitation_probability_max": [5], "windspeed_10m_max": [12.0], "weathercode": [1]}}`))
	}))
	defer ts.Close()

	client := meteo.New(ts.URL + "/v1")
	ctx := context.Background()

	if _, err := client.Current(ctx, 48.85, 2.35, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v1/forecast" {
		t.Errorf("current: expected request path /v1/forecast, got %q", gotPath)
	}

	if _, err := client.Forecast(ctx, 48.85, 2.35, 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/v1/forecast" {
		t.Errorf("forecast: expected request path /v1/forecast, got %q", gotPath)
	}
}

func TestDescribe(t *testing.T) {
	if meteo.Describe(95) != "thunderstorm" {
		t.Errorf("unexpected description for 95")
	}
	if meteo.Describe(42) != "unknown conditions" {
		t.Errorf("expected fallback for unknown code")
	}
}
