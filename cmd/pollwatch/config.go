package main

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/rs/zerolog/log"
)

type TimerConfig struct {
	Name    string `toml:"name"`
	AfterMs int64  `toml:"after_ms"`
}

type FileConfig struct {
	Name string `toml:"name"`
	// Path is opened read-only; readiness means readable.
	Path string `toml:"path"`
}

type Config struct {
	LogLevel string        `toml:"log_level"`
	Timers   []TimerConfig `toml:"timers"`
	Files    []FileConfig  `toml:"files"`
}

func loadConfig(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("can't read configuration file")
	}
	config := &Config{}
	if err := toml.Unmarshal(data, config); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("can't parse configuration file")
	}
	return config
}
