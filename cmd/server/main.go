package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/BuildPlanner/backend/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override the environment.
	flag.StringVar(&cfg.Server.Port, "port", cfg.Server.Port, "Server port")
	flag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "Bind address")
	flag.StringVar(&cfg.AI.URL, "ai-url", cfg.AI.URL, "Language model endpoint")
	flag.StringVar(&cfg.AI.Model, "ai-model", cfg.AI.Model, "Language model name")
	noAI := flag.Bool("no-ai", false, "Serve rule-based advice only")
	flag.StringVar(&cfg.Estimate.RatesFile, "rates", cfg.Estimate.RatesFile, "Unit rate file (yaml or toml)")
	flag.StringVar(&cfg.Estimate.Location, "location", cfg.Estimate.Location, "Location reported with estimates")
	flag.StringVar(&cfg.Cache.RedisAddr, "redis", cfg.Cache.RedisAddr, "Redis address for the advice cache")
	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level")
	flag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "Development mode")
	flag.Parse()

	if *noAI {
		cfg.AI.Enabled = false
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
