package config

import (
	"os"

	"github.com/BurntSushi/toml"

	chunkmd "github.com/nevindra/chunkmd"
)

type Config struct {
	Chunking chunkmd.ChunkConfig `toml:"chunking"`
	Observer ObserverConfig      `toml:"observer"`
	Output   OutputConfig        `toml:"output"`
}

type ObserverConfig struct {
	Enabled bool `toml:"enabled"`
}

type OutputConfig struct {
	Format string `toml:"format"` // "json" (default) or "text"
	Pretty bool   `toml:"pretty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Chunking: chunkmd.DefaultConfig(),
		Output:   OutputConfig{Format: "json"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		path = "chunkmd.toml"
	}

	if data, err := os.ReadFile(path); err == nil {
		_ = toml.Unmarshal(data, &cfg)
	}

	// Env overrides
	if v := os.Getenv("CHUNKMD_OBSERVER_ENABLED"); v == "true" || v == "1" {
		cfg.Observer.Enabled = true
	}
	if v := os.Getenv("CHUNKMD_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}

	// Fallbacks
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}

	return cfg
}
