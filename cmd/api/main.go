package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-agent/config"
	_ "weather-agent/docs" // Swagger docs
	"weather-agent/internal/agent"
	"weather-agent/internal/agent/orchestrator"
	"weather-agent/internal/agent/tools"
	chatDelivery "weather-agent/internal/chat/delivery/http"
	"weather-agent/internal/httpserver"
	"weather-agent/internal/middleware"
	"weather-agent/internal/session"
	"weather-agent/pkg/geocode"
	"weather-agent/pkg/llmprovider"
	"weather-agent/pkg/log"
	"weather-agent/pkg/meteo"
)

// @title       Weather Agent API
// @description Natural-language weather Q&A over Open-Meteo with LLM tool calling.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Weather Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	for _, p := range providers {
		logger.Infof(ctx, "LLM provider ready: %s (%s)", p.Name(), p.Model())
	}
	llm := llmprovider.NewManager(providers, llmprovider.ManagerConfigFromLLM(&cfg.LLM), logger)

	// 4. Open-Meteo clients and tools
	geocoder := geocode.New(cfg.OpenMeteo.GeocodingBaseURL)
	weather := meteo.New(cfg.OpenMeteo.ForecastBaseURL)

	registry := agent.NewToolRegistry()
	registry.Register(tools.NewGetCoordinatesTool(geocoder, logger))
	registry.Register(tools.NewGetCurrentWeatherTool(weather, logger))
	registry.Register(tools.NewGetWeatherForecastTool(weather, logger))
	logger.Infof(ctx, "Registered %d agent tools", len(registry.List()))

	// 5. Session store
	sessionTTL, err := time.ParseDuration(cfg.Chat.SessionTTL)
	if err != nil {
		logger.Warnf(ctx, "Invalid chat.session_ttl %q, using default: %v", cfg.Chat.SessionTTL, err)
		sessionTTL = 0
	}
	sessions := session.NewStore(session.Config{
		Window: cfg.Chat.Window,
		TTL:    sessionTTL,
	}, logger)
	defer sessions.Close()

	// 6. Orchestrator and chat delivery
	orch := orchestrator.New(llm, registry, sessions, logger, cfg.Chat.MaxSteps)
	chatHandler := chatDelivery.New(logger, orch)

	// 7. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware:  middleware.New(logger, cfg.Chat.RateLimitPerMin),
		ChatHandler: chatHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
