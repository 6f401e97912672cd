package config_test

import (
	"strings"
	"testing"

	"weather-agent/config"
	"weather-agent/pkg/geocode"
	"weather-agent/pkg/meteo"
)

func TestLoadOpenMeteoBaseURLs(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The clients append /search and /forecast themselves, so the
	// configured values must be the /v1 roots the clients default to.
	if cfg.OpenMeteo.GeocodingBaseURL != geocode.DefaultBaseURL {
		t.Errorf("geocoding base URL %q does not match client default %q",
			cfg.OpenMeteo.GeocodingBaseURL, geocode.DefaultBaseURL)
	}
	if cfg.OpenMeteo.ForecastBaseURL != meteo.DefaultBaseURL {
		t.Errorf("forecast base URL %q does not match client default %q",
			cfg.OpenMeteo.ForecastBaseURL, meteo.DefaultBaseURL)
	}

	if strings.HasSuffix(cfg.OpenMeteo.GeocodingBaseURL, "/search") {
		t.Error("geocoding base URL must not already contain the /search segment")
	}
	if strings.HasSuffix(cfg.OpenMeteo.ForecastBaseURL, "/forecast") {
		t.Error("forecast base URL must not already contain the /forecast segment")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chat.Window != 20 {
		t.Errorf("expected chat window 20, got %d", cfg.Chat.Window)
	}
	if cfg.Chat.MaxSteps != 5 {
		t.Errorf("expected max steps 5, got %d", cfg.Chat.MaxSteps)
	}
	if len(cfg.LLM.Providers) == 0 {
		t.Error("expected at least one configured LLM provider")
	}
}
