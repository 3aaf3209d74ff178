package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/inventory-orchestrator/console/internal/alerts"
	"github.com/inventory-orchestrator/console/internal/api"
	"github.com/inventory-orchestrator/console/internal/config"
	"github.com/inventory-orchestrator/console/internal/feed"
	"github.com/inventory-orchestrator/console/internal/metrics"
	"github.com/inventory-orchestrator/console/internal/panels"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := os.Getenv("CONSOLE_CONFIG")
	if configPath == "" {
		configPath = "console.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)
	logger.Info().
		Str("version", Version).
		Str("buildTime", BuildTime).
		Str("config", configPath).
		Msg("starting inventory orchestrator console")

	// Metrics registry with the standard process/runtime collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Core pipeline: one log, one alert ring, four panels, one feed client.
	// Everything is wired here by reference; there is no global lookup.
	eventLog := feed.NewLog(cfg.Feed.LogCapacity)
	ring := alerts.NewRing(cfg.Alerts.Capacity, m)

	inventory := panels.NewInventory(ring)
	agentPanel := panels.NewAgents()
	dashboard := panels.NewDashboard(ring)
	sustainability := panels.NewSustainability()

	client := feed.NewClient(cfg.Upstream.URL, nil, eventLog, m, logger)
	client.Subscribe(inventory)
	client.Subscribe(agentPanel)
	client.Subscribe(dashboard)
	client.Subscribe(sustainability)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connection loss and dial failure are surfaced only through the status
	// indicator; the console keeps serving its last projected state.
	if err := client.Connect(ctx); err != nil {
		logger.Warn().Err(err).Msg("upstream feed unavailable, serving disconnected")
	}

	h := api.NewHandler(api.Dependencies{
		Feed:           client,
		Events:         eventLog,
		Ring:           ring,
		Inventory:      inventory,
		Agents:         agentPanel,
		Dashboard:      dashboard,
		Sustainability: sustainability,
		Version:        Version,
		DefaultLimit:   cfg.Feed.RecentEventsLimit,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/api/health" || path == "/metrics" ||
				strings.HasPrefix(path, "/api/connection")
		},
	}))
	e.Use(middleware.Recover())

	if cfg.Server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Server.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, h)
	api.RegisterMetrics(e, registry)

	s := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.ListenAddr).Msg("console listening")
		if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown failed")
	}

	// The feed connection is released unconditionally, whatever state the
	// shutdown is in.
	if err := client.Close(); err != nil {
		logger.Debug().Err(err).Msg("feed close")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
