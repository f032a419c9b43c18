package config

import (
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Port               string
	LogLevel           logrus.Level
	EngineFile         string
	VCMHSourceURL      string
	LookupTimeout      time.Duration
	SimulatedLatency   time.Duration
	CalculationTimeout time.Duration
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
}

// Load reads flags first and falls back to environment variables, then defaults.
func Load(args []string) (*Config, error) {
	var (
		cfg      Config
		logLevel string
	)

	fs := flag.NewFlagSet("readjustment-engine", flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "p", "", "Server port")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.EngineFile, "f", "", "Engine file with reference table and policy (YAML)")
	fs.StringVar(&cfg.VCMHSourceURL, "vcmh-url", "", "Base URL of a remote VCMH index service")
	fs.DurationVar(&cfg.LookupTimeout, "lookup-timeout", 0, "Timeout for remote index lookups")
	fs.DurationVar(&cfg.SimulatedLatency, "simulate-latency", 0, "Artificial delay for static index lookups")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		cfg.Port = getenv("PORT", "8080")
	}
	if logLevel == "" {
		logLevel = getenv("LOG_LEVEL", "info")
	}
	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		return nil, errors.New("invalid log level: " + logLevel)
	}
	cfg.LogLevel = level

	if cfg.EngineFile == "" {
		cfg.EngineFile = os.Getenv("ENGINE_FILE")
	}
	if cfg.VCMHSourceURL == "" {
		cfg.VCMHSourceURL = os.Getenv("VCMH_SOURCE_URL")
	}
	if cfg.LookupTimeout == 0 {
		cfg.LookupTimeout = parseDuration("VCMH_LOOKUP_TIMEOUT", 2*time.Second)
	}
	if cfg.SimulatedLatency == 0 {
		cfg.SimulatedLatency = parseDuration("VCMH_SIMULATED_LATENCY", 0)
	}
	cfg.CalculationTimeout = parseDuration("CALCULATION_TIMEOUT", 5*time.Second)
	cfg.ReadTimeout = parseDuration("READ_TIMEOUT", 10*time.Second)
	cfg.WriteTimeout = parseDuration("WRITE_TIMEOUT", 10*time.Second)

	if cfg.LookupTimeout < 0 || cfg.SimulatedLatency < 0 {
		return nil, errors.New("durations must not be negative")
	}

	return &cfg, nil
}

// NewLogger returns a JSON logger at the configured level.
func NewLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(level)
	return logger
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(env string, def time.Duration) time.Duration {
	if v := os.Getenv(env); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
