package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rpatil26/travelbot/config"
	"github.com/rpatil26/travelbot/fulfillment"
	"github.com/rpatil26/travelbot/log"
	"github.com/rpatil26/travelbot/providers/openweather"
	"github.com/rpatil26/travelbot/providers/tequila"
)

func main() {
	// Initialize logging
	log.Init()

	// Local development convenience; env vars win over .env
	_ = godotenv.Load()

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info(context.Background(), "Program terminated externally. Exiting...")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}

	// Missing credentials don't block startup; the affected provider
	// answers Unconfigured and the handler apologizes.
	if cfg.OpenWeather.APIKey == "" {
		log.Warnf(context.Background(), "OPENWEATHER_KEY not set, weather requests will fail until it is configured")
	}
	if cfg.Tequila.APIKey == "" {
		log.Warnf(context.Background(), "TEQUILA_API_KEY not set, flight searches will fail until it is configured")
	}

	weather := openweather.NewClient(cfg.OpenWeather.APIKey)
	flights := tequila.NewClient(cfg.Tequila.APIKey)
	if cfg.Tequila.BaseURL != "" {
		flights.BaseURL = cfg.Tequila.BaseURL
	}

	server := &webhookServer{
		fulfiller: fulfillment.New(weather, flights),
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: newMux(server),
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down server...")
		srv.Shutdown(context.Background())
	}()

	log.Infof(context.Background(), "Starting server on port %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf(context.Background(), "Server failed: %v", err)
	}
}
