package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/minesweeper/internal/config"
	"github.com/mitchelldurbincs/minesweeper/internal/game"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/solver"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	games := flag.Int("games", 0, "Number of games to auto-play (0 to use config default)")
	seed := flag.Int64("seed", 0, "Seed for reproducible games (0 to use config default, or the clock)")
	verbose := flag.Bool("verbose", false, "Print the board after every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *games == 0 {
		*games = cfg.Demo.Games
	}
	if *seed == 0 {
		*seed = cfg.Demo.Seed
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	fmt.Printf("Game seed: %d\n", *seed)

	difficulty, err := core.ParseDifficulty(cfg.Game.Difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game.difficulty")
	}

	logger := zerolog.Nop()
	if cfg.Development.VerboseLogging {
		logger = log.Logger
	}

	rng := rand.New(rand.NewSource(*seed))
	wins := 0
	for i := 0; i < *games; i++ {
		won, err := playGame(game.GameConfig{
			Difficulty:  difficulty,
			Size:        cfg.Game.Size,
			MineTotal:   cfg.Game.MineTotal,
			MaxRerolls:  cfg.Game.MaxRerolls,
			Rng:         rand.New(rand.NewSource(rng.Int63())),
			Logger:      logger,
			RevealMines: cfg.Development.RevealMinesInDump,
		}, rng, *verbose)
		if err != nil {
			log.Fatal().Err(err).Int("game", i+1).Msg("Game failed")
		}
		if won {
			wins++
		}
	}

	fmt.Printf("\nWon %d of %d games\n", wins, *games)
}

// playGame lets the solver play one board to the end
func playGame(cfg game.GameConfig, rng *rand.Rand, verbose bool) (bool, error) {
	moves := &game.MoveLog{}
	cfg.Recorder = moves

	g, err := game.NewEngine(context.Background(), cfg)
	if err != nil {
		return false, err
	}
	s := solver.New(rng)

	guesses := 0
	for {
		move, ok := s.NextMove(g.Snapshot())
		if !ok {
			break
		}
		if move.IsGuess {
			guesses++
		}
		res, err := g.Apply(move.Action)
		if err != nil {
			return false, fmt.Errorf("move %v: %w", move.Action, err)
		}
		if verbose {
			fmt.Printf("Move %d: %s %s [%s] -> %s\n%s\n",
				g.Stats().Moves, move.Action.Kind, move.Action.At, move.Strategy, res.Kind, g.ColorBoard())
		}
	}

	st := g.Stats()
	fmt.Printf("\nGame %s (%dx%d, %d mines): %s after %d moves, %d guesses, %d rerolls\n",
		g.GameID(), g.Size(), g.Size(), g.MineTotal(), st.Outcome, st.Moves, guesses, st.Rerolls)
	fmt.Print(g.ColorBoard())

	if moves.Final == nil {
		return false, fmt.Errorf("game %s stopped before finishing", g.GameID())
	}
	return st.Outcome == game.OutcomeWon, nil
}
