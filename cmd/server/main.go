// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	httpAdapter "github.com/productdecoder/search-gw/pkg/adapters/http"
	"github.com/productdecoder/search-gw/pkg/core/config"
	"github.com/productdecoder/search-gw/pkg/httputil"
	"github.com/productdecoder/search-gw/pkg/observability/logging"
	"github.com/productdecoder/search-gw/pkg/observability/metrics"
	"github.com/productdecoder/search-gw/pkg/ratelimit"
	"github.com/productdecoder/search-gw/pkg/search"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 8080, "HTTP port to listen on")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Print version
	if *version {
		fmt.Printf("Search Gateway Server\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		os.Exit(0)
	}

	// Load .env if present (dev convenience; real deployments set the
	// environment directly)
	_ = godotenv.Load()

	// Initialize logger
	logger := logging.New(logging.Config{
		Level:  "info",
		Format: "json",
	})
	logger.Info("Starting Search Gateway Server",
		"version", Version,
		"build_time", BuildTime)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		// If config file doesn't exist, use defaults
		logger.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// Override port if specified
	if *port != 8080 {
		cfg.Server.Port = *port
	}

	// Fail fast on missing provider credentials
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize rate-limit store
	store, err := ratelimit.Stores.New(context.Background(), cfg.RateLimit.Store, map[string]string{
		"window": cfg.RateLimit.Window.String(),
		"path":   cfg.RateLimit.SQLitePath,
		"dsn":    cfg.RateLimit.PostgresDSN,
	})
	if err != nil {
		logger.Error("Failed to initialize rate-limit store", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	limiter := ratelimit.NewLimiter(store, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	logger.Info("Initialized rate limiter",
		"store", cfg.RateLimit.Store,
		"max_requests", cfg.RateLimit.MaxRequests,
		"window", cfg.RateLimit.Window)

	// Initialize provider adapters over one shared outbound client
	client := httputil.New(cfg.Client.Timeout)
	news := search.NewGNewsClient(cfg.Providers.GNews.APIKey, cfg.Providers.GNews.BaseURL, client)
	web := search.NewCSEClient(cfg.Providers.Google.APIKey, cfg.Providers.Google.CSEID, cfg.Providers.Google.CSEEndpoint, client)
	video := search.NewYouTubeClient(cfg.Providers.Google.APIKey, cfg.Providers.Google.YouTubeEndpoint, client)
	image := search.NewVisionClient(cfg.Providers.Google.APIKey, cfg.Providers.Google.VisionEndpoint, client)
	logger.Info("Initialized provider adapters", "client_timeout", cfg.Client.Timeout)

	// Initialize metrics
	mt := metrics.New(prometheus.DefaultRegisterer)

	// Initialize HTTP adapter
	handler := httpAdapter.New(logger.With("component", "http"), mt, limiter, news, web, video, image, Version)
	logger.Info("Initialized HTTP adapter")

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	go func() {
		logger.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
