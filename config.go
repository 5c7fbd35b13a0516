package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"star-rush/server/internal/world"
	"star-rush/server/logging"
)

// serverConfig is everything the process reads from the environment. A
// .env file in the working directory seeds the environment first, so local
// runs don't need exported variables.
type serverConfig struct {
	Addr        string
	ClientDir   string
	ProfilePath string
	World       world.Config
	Logging     logging.Config
}

func loadConfig() serverConfig {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	cfg := serverConfig{
		Addr:        envOr("STAR_RUSH_ADDR", ":8080"),
		ClientDir:   envOr("STAR_RUSH_CLIENT_DIR", "../client"),
		ProfilePath: os.Getenv("STAR_RUSH_PROFILES"),
		World: world.Config{
			Seed:      os.Getenv("STAR_RUSH_SEED"),
			StarCount: envIntOr("STAR_RUSH_STARS", 0),
		},
		Logging: logging.DefaultConfig(),
	}
	cfg.Logging.JSON.FilePath = os.Getenv("STAR_RUSH_LOG_JSON")
	cfg.Logging.Console.UseColor = envBool("STAR_RUSH_LOG_COLOR")

	if sinks := os.Getenv("STAR_RUSH_LOG_SINKS"); sinks != "" {
		cfg.Logging.EnabledSinks = splitList(sinks)
	}
	if cfg.Logging.JSON.FilePath != "" && !cfg.Logging.HasSink("json") {
		cfg.Logging.EnabledSinks = append(cfg.Logging.EnabledSinks, "json")
	}
	if level := os.Getenv("STAR_RUSH_LOG_LEVEL"); level != "" {
		cfg.Logging.MinimumSeverity = parseSeverity(level)
	}

	return cfg
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("ignoring non-numeric %s=%q", key, raw)
		return fallback
	}
	return value
}

func envBool(key string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("ignoring non-boolean %s=%q", key, raw)
		return false
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func parseSeverity(raw string) logging.Severity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return logging.SeverityDebug
	case "info":
		return logging.SeverityInfo
	case "warn", "warning":
		return logging.SeverityWarn
	case "error":
		return logging.SeverityError
	default:
		log.Printf("unknown log level %q, keeping default", raw)
		return logging.SeverityInfo
	}
}
