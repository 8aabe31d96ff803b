package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	RedisAddr            string
	KafkaBrokers         []string
	ConfirmationTopic    string
	PaymentAPIURL        string
	PaymentSecretKey     string
	PaymentWebhookSecret string
	ClientURL            string
	AuthSecret           string
	SellerEmail          string
	SellerPassword       string
	ReaperInterval       time.Duration
	ReaperBatch          int
	WorkerPoolSize       int
	UnpaidOrderTTL       time.Duration
	ShutdownTimeout      time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultRedisAddr         = "localhost:6379"
	defaultConfirmationTopic = "order.confirmation"
	defaultPaymentAPIURL     = "https://api.stripe.com"
	defaultClientURL         = "http://localhost:3000"
	defaultAuthSecret        = "change-me-in-production"
	defaultReaperInterval    = time.Minute
	defaultReaperBatch       = 32
	defaultWorkerPoolSize    = 4
	defaultUnpaidOrderTTL    = 24 * time.Hour
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		RedisAddr:            getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		KafkaBrokers:         splitCSV(getString(lookup, "KAFKA_BROKERS", "")),
		ConfirmationTopic:    getString(lookup, "CONFIRMATION_TOPIC", defaultConfirmationTopic),
		PaymentAPIURL:        getString(lookup, "PAYMENT_API_URL", defaultPaymentAPIURL),
		PaymentSecretKey:     getString(lookup, "PAYMENT_SECRET_KEY", ""),
		PaymentWebhookSecret: getString(lookup, "PAYMENT_WEBHOOK_SECRET", ""),
		ClientURL:            getString(lookup, "CLIENT_URL", defaultClientURL),
		AuthSecret:           getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SellerEmail:          getString(lookup, "SELLER_EMAIL", ""),
		SellerPassword:       getString(lookup, "SELLER_PASSWORD", ""),
		ReaperInterval:       getDuration(lookup, "REAPER_INTERVAL", defaultReaperInterval),
		ReaperBatch:          getInt(lookup, "REAPER_BATCH", defaultReaperBatch),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		UnpaidOrderTTL:       getDuration(lookup, "UNPAID_ORDER_TTL", defaultUnpaidOrderTTL),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("lanthandel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		brokersStr         = strings.Join(cfg.KafkaBrokers, ",")
		reaperIntervalStr  = cfg.ReaperInterval.String()
		unpaidTTLStr       = cfg.UnpaidOrderTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address")
	fs.StringVar(&brokersStr, "brokers", brokersStr, "Kafka broker list, comma separated")
	fs.StringVar(&cfg.PaymentAPIURL, "payment-url", cfg.PaymentAPIURL, "Payment provider base URL")
	fs.StringVar(&cfg.ClientURL, "client-url", cfg.ClientURL, "Storefront base URL for redirects")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reaper workers")
	fs.StringVar(&reaperIntervalStr, "reaper-interval", reaperIntervalStr, "Interval between unpaid-order sweeps")
	fs.IntVar(&cfg.ReaperBatch, "reaper-batch", cfg.ReaperBatch, "Maximum orders per reaper sweep")
	fs.StringVar(&unpaidTTLStr, "unpaid-ttl", unpaidTTLStr, "Age after which an unpaid online order is reaped")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.KafkaBrokers = splitCSV(brokersStr)

	var err error

	if cfg.ReaperInterval, err = time.ParseDuration(reaperIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reaper interval: %w", err)
	}

	if cfg.UnpaidOrderTTL, err = time.ParseDuration(unpaidTTLStr); err != nil {
		return nil, fmt.Errorf("invalid unpaid order ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReaperBatch <= 0 {
		cfg.ReaperBatch = defaultReaperBatch
	}

	if cfg.ReaperInterval <= 0 {
		cfg.ReaperInterval = defaultReaperInterval
	}

	if cfg.UnpaidOrderTTL <= 0 {
		cfg.UnpaidOrderTTL = defaultUnpaidOrderTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentSecretKey == "" {
		return nil, fmt.Errorf("payment secret key must be provided")
	}

	if cfg.PaymentWebhookSecret == "" {
		return nil, fmt.Errorf("payment webhook secret must be provided")
	}

	if cfg.SellerEmail == "" || cfg.SellerPassword == "" {
		return nil, fmt.Errorf("seller credentials must be provided")
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

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
