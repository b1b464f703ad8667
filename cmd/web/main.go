package main

import (
	"github.com/minaorangina/patience/config"
	"github.com/minaorangina/patience/games"
	"github.com/minaorangina/patience/server"
	"github.com/minaorangina/patience/store"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	cfg.SetupLogging()

	registry, err := games.NewRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("could not register games")
	}
	if _, ok := registry.Find(cfg.DefaultGame); !ok {
		log.Fatal().Int("game", cfg.DefaultGame).Msg("unknown default game")
	}

	s := server.NewServer(server.ServerOpts{
		Registry:       registry,
		Store:          store.NewInMemorySessionStore(cfg.MaxSessions),
		DefaultGame:    cfg.DefaultGame,
		MaxFillSteps:   cfg.MaxFillSteps,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	s.Addr = cfg.Addr()

	log.Info().Str("addr", s.Addr).Msg("listening")
	log.Fatal().Err(s.ListenAndServe()).Msg("server stopped")
}
