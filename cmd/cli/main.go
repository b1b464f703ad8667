package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/cli"
	"github.com/minaorangina/patience/config"
	"github.com/minaorangina/patience/deck"
	"github.com/minaorangina/patience/games"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		game string
		seed uint64
		list bool
	)
	flag.StringVar(&game, "game", "", "Game id or name (default: PATIENCE_DEFAULT_GAME)")
	flag.Uint64Var(&seed, "seed", 0, "Deal seed (0 = random)")
	flag.BoolVar(&list, "list", false, "List the available games and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	cfg.SetupLogging()

	registry, err := games.NewRegistry()
	if err != nil {
		log.Fatal().Err(err).Msg("could not register games")
	}

	if list {
		for _, d := range registry.Definitions() {
			cli.SendText(os.Stdout, "%4d  %-14s %s, %s\n", d.ID, d.Name, d.Type, d.Skill)
		}
		return
	}

	def, ok := findGame(registry, game, cfg.DefaultGame)
	if !ok {
		log.Fatal().Str("game", game).Msg("unknown game")
	}
	if seed == 0 {
		seed = deck.NewSeed()
	}

	s, err := registry.NewSession(def.ID, patience.SessionOpts{
		Seed:         seed,
		MaxFillSteps: cfg.MaxFillSteps,
		Sink: patience.EventSinkFunc(func(e patience.Event) {
			log.Debug().Str("event", e.Name).Int("stack", e.Stack).Msg("event")
		}),
	})
	if err != nil {
		log.Fatal().Err(err).Uint64("seed", seed).Msg("could not deal")
	}

	if err := cli.NewTerminal(os.Stdin, os.Stdout).Play(s); err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func findGame(r *patience.Registry, game string, fallback int) (*patience.Definition, bool) {
	if game == "" {
		return r.Find(fallback)
	}
	if id, err := strconv.Atoi(game); err == nil {
		return r.Find(id)
	}
	return r.FindByName(game)
}
