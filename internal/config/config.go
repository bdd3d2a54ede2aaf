// Package config holds the server settings. Every setting has an environment
// variable providing its default; command-line flags override it.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const defaultMaxBodySize = 10 * 1024 * 1024

// Config - settings of a server process
type Config struct {
	Addr          string
	MetricsAddr   string
	LogLevel      string
	LogFormat     string
	SentryDSN     string
	SessionSecret string
	GraphiQL      bool
	MaxBodySize   uint
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// FromEnv returns the configuration described by the environment alone.
func FromEnv() Config {
	cfg := Config{
		Addr:          getenv("GRAPHQL_ADDR", ":4000"),
		MetricsAddr:   getenv("GRAPHQL_METRICS_ADDR", ":8081"),
		LogLevel:      getenv("GRAPHQL_LOG_LEVEL", "info"),
		LogFormat:     getenv("GRAPHQL_LOG_FORMAT", "text"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		SessionSecret: os.Getenv("GRAPHQL_SESSION_SECRET"),
		GraphiQL:      true,
		MaxBodySize:   defaultMaxBodySize,
	}
	if v, err := strconv.ParseBool(getenv("GRAPHQL_GRAPHIQL", "true")); err == nil {
		cfg.GraphiQL = v
	} else {
		log.Warnf("Ignoring GRAPHQL_GRAPHIQL: %v", err)
	}
	if v, err := strconv.ParseUint(getenv("GRAPHQL_MAX_BODY_SIZE", ""), 10, 0); err == nil {
		cfg.MaxBodySize = uint(v)
	}
	return cfg
}

// BindFlags registers one flag per setting on fs, defaulting to the values
// already in cfg.
func (cfg *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address of the GraphQL endpoint")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address of the metrics endpoint, empty to disable")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text or json)")
	fs.StringVar(&cfg.SentryDSN, "sentry-dsn", cfg.SentryDSN, "Sentry DSN, empty to disable error reporting")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "key authenticating session cookies, random when empty")
	fs.BoolVar(&cfg.GraphiQL, "graphiql", cfg.GraphiQL, "serve GraphiQL to browsers")
	fs.UintVar(&cfg.MaxBodySize, "max-body-size", cfg.MaxBodySize, "maximum request body size in bytes")
}

// EnsureSessionSecret fills an empty SessionSecret with a random key. Sessions
// signed with a generated key do not survive a restart.
func (cfg *Config) EnsureSessionSecret() error {
	if cfg.SessionSecret != "" {
		return nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return errors.Wrap(err, "generating session secret")
	}
	cfg.SessionSecret = hex.EncodeToString(key)
	log.Warn("No session secret configured, using a random key; sessions end on restart")
	return nil
}

// Validate reports the first malformed setting.
func (cfg Config) Validate() error {
	if cfg.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "log-level")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return errors.Newf("log-format: unknown format %q", cfg.LogFormat)
	}
	if cfg.SessionSecret == "" {
		return errors.New("session-secret must not be empty")
	}
	if cfg.MaxBodySize == 0 {
		return errors.New("max-body-size must be positive")
	}
	return nil
}

// ConfigureLogging applies the log settings to the standard logrus logger.
func (cfg Config) ConfigureLogging() error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log-level")
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
