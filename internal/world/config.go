package world

import (
	"strings"

	"star-rush/server/internal/sim"
)

const DefaultSeed = "star-rush"

type Config struct {
	Seed      string `json:"seed"`
	StarCount int    `json:"starCount"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.StarCount <= 0 {
		normalized.StarCount = sim.StarCount
	}
	return normalized
}

func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func DefaultConfig() Config {
	return Config{Seed: DefaultSeed, StarCount: sim.StarCount}
}
