package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"readjustment-engine/internal/config"
	"readjustment-engine/internal/engine"
	"readjustment-engine/internal/handler"
	"readjustment-engine/internal/reference"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		config.NewLogger(logrus.InfoLevel).Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	table, policy, err := config.LoadEngineFile(cfg.EngineFile)
	if err != nil {
		logger.Fatalf("Failed to load engine file: %v", err)
	}
	if cfg.SimulatedLatency > 0 {
		table = table.WithLatency(cfg.SimulatedLatency)
	}

	var source reference.Source = table
	if cfg.VCMHSourceURL != "" {
		source = reference.NewRemote(cfg.VCMHSourceURL, cfg.LookupTimeout, table, logger)
		logger.Infof("Using remote VCMH source %s", cfg.VCMHSourceURL)
	}

	eng := engine.New(table, source, policy)
	h := handler.New(eng, logger, cfg.CalculationTimeout)

	server := &fasthttp.Server{
		Handler:      h.Route,
		Name:         "readjustment-engine",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go awaitShutdown(stop, server.Shutdown, logger)

	logger.WithField("operators", table.Len()).Infof("Readjustment engine starting on port %s", cfg.Port)
	if err := server.ListenAndServe(":" + cfg.Port); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}

// awaitShutdown blocks until a signal arrives, then stops the server.
func awaitShutdown(stop <-chan os.Signal, shutdown func() error, logger *logrus.Logger) {
	<-stop
	logger.Info("Shutting down")
	if err := shutdown(); err != nil {
		logger.WithError(err).Error("Shutdown failed")
	}
}
