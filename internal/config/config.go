package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisAddress    string
	JWTSecret       string
	CatalogFile     string
	AcceptDelay     time.Duration
	ReplyDelay      time.Duration
	BaseFee         decimal.Decimal
	PerKmRate       decimal.Decimal
	WorkerPoolSize  int
	EventBuffer     int
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
}

// Args are the command line arguments handed to the loader.
type Args []string

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultAcceptDelay     = 3 * time.Second
	defaultReplyDelay      = 2 * time.Second
	defaultBaseFee         = "25"
	defaultPerKmRate       = "15"
	defaultWorkerPoolSize  = 4
	defaultEventBuffer     = 64
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables.
func Load(args Args) (*Config, error) {
	return load(args, os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		RedisAddress:    getString(lookup, "REDIS_ADDR", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		CatalogFile:     getString(lookup, "CATALOG_FILE", ""),
		AcceptDelay:     getDuration(lookup, "ACCEPT_DELAY", defaultAcceptDelay),
		ReplyDelay:      getDuration(lookup, "REPLY_DELAY", defaultReplyDelay),
		WorkerPoolSize:  getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		EventBuffer:     getInt(lookup, "EVENT_BUFFER", defaultEventBuffer),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("deliverypro", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		acceptDelayStr     = cfg.AcceptDelay.String()
		replyDelayStr      = cfg.ReplyDelay.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		baseFeeStr         = getString(lookup, "BASE_FEE", defaultBaseFee)
		perKmRateStr       = getString(lookup, "PER_KM_RATE", defaultPerKmRate)
		logLevelStr        = getString(lookup, "LOG_LEVEL", defaultLogLevel)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN, in-memory storage when empty")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for chat logs")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "YAML catalog file, embedded catalog when empty")
	fs.StringVar(&acceptDelayStr, "accept-delay", acceptDelayStr, "Delay before a roster driver accepts a pending order")
	fs.StringVar(&replyDelayStr, "reply-delay", replyDelayStr, "Delay before the driver answers a chat message")
	fs.StringVar(&baseFeeStr, "base-fee", baseFeeStr, "Base delivery fee")
	fs.StringVar(&perKmRateStr, "per-km-rate", perKmRateStr, "Delivery fee per kilometre")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of event dispatcher workers")
	fs.IntVar(&cfg.EventBuffer, "event-buffer", cfg.EventBuffer, "Pending events per dispatcher worker")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.AcceptDelay, err = time.ParseDuration(acceptDelayStr); err != nil {
		return nil, fmt.Errorf("invalid accept delay: %w", err)
	}

	if cfg.ReplyDelay, err = time.ParseDuration(replyDelayStr); err != nil {
		return nil, fmt.Errorf("invalid reply delay: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.BaseFee, err = decimal.NewFromString(baseFeeStr); err != nil {
		return nil, fmt.Errorf("invalid base fee: %w", err)
	}

	if cfg.PerKmRate, err = decimal.NewFromString(perKmRateStr); err != nil {
		return nil, fmt.Errorf("invalid per km rate: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(logLevelStr))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}

	if cfg.AcceptDelay < 0 {
		cfg.AcceptDelay = defaultAcceptDelay
	}

	if cfg.ReplyDelay < 0 {
		cfg.ReplyDelay = defaultReplyDelay
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.BaseFee.IsNegative() || cfg.PerKmRate.IsNegative() {
		return nil, fmt.Errorf("delivery fees must not be negative")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
