// pollwatch registers the sources described in a TOML configuration file
// and runs oneoff scans until every source has reported ready once.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foxxorcat/pollmux/poll"
)

var config *Config

func init() {
	configFilePath := flag.String("c", "pollwatch.toml", "path to configuration file.")
	flag.Parse()
	config = loadConfig(*configFilePath)
	initLog(config)
}

func initLog(config *Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func main() {
	registry := poll.NewRegistry()
	names := make(map[poll.Handle]string)
	var pending []poll.Handle

	for _, t := range config.Timers {
		h, err := registry.Register(poll.NewTimer(time.Duration(t.AfterMs) * time.Millisecond))
		if err != nil {
			log.Fatal().Err(err).Str("timer", t.Name).Msg("can't register timer")
		}
		names[h] = t.Name
		pending = append(pending, h)
	}

	var files []*os.File
	for _, f := range config.Files {
		file, err := os.Open(f.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", f.Path).Msg("can't open watched file")
		}
		files = append(files, file)
		h, err := registry.Register(poll.NewFD(int(file.Fd()), poll.DirectionRead))
		if err != nil {
			log.Fatal().Err(err).Str("file", f.Name).Msg("can't register file")
		}
		names[h] = f.Name
		pending = append(pending, h)
	}
	defer func() {
		for _, file := range files {
			_ = file.Close()
		}
	}()

	if len(pending) == 0 {
		log.Warn().Msg("nothing to watch")
		return
	}
	log.Info().Int("sources", len(pending)).Msg("watching...")

	for len(pending) > 0 {
		ready, err := registry.PollOneoff(pending)
		if err != nil {
			log.Fatal().Err(err).Msg("poll-oneoff failed")
		}

		var next []poll.Handle
		for i, h := range pending {
			if !ready[i] {
				next = append(next, h)
				continue
			}
			log.Info().Str("source", names[h]).Msg("ready")
			if err := registry.Dispose(h); err != nil {
				log.Fatal().Err(err).Msg("dispose failed")
			}
		}
		pending = next
	}

	stats := registry.Stats()
	log.Info().
		Uint64("polls", stats.Polls.Load()).
		Uint64("suspensions", stats.Suspensions.Load()).
		Msg("all sources ready")
}
