package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/minesweeper/internal/config"
	"github.com/mitchelldurbincs/minesweeper/internal/grpc/gameserver"
	"github.com/mitchelldurbincs/minesweeper/internal/transport/mcp"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("minesweeper-mcp v%s\n", version)
		os.Exit(0)
	}

	// stdout carries the MCP protocol, so every log line goes to stderr
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// MSW_* overrides may live in a .env file next to the binary
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	gm := gameserver.NewGameManager(gameserver.ManagerConfig{
		MaxGames:        cfg.Server.MCPServer.MaxGames,
		GameTTL:         time.Duration(cfg.Server.GRPCServer.GameTTL) * time.Second,
		CleanupInterval: time.Duration(cfg.Server.GRPCServer.CleanupInterval) * time.Second,
		Defaults: gameserver.GameParams{
			Difficulty: cfg.Game.Difficulty,
			Size:       cfg.Game.Size,
			MineTotal:  cfg.Game.MineTotal,
			MaxRerolls: cfg.Game.MaxRerolls,
		},
		Logger:    log.Logger,
		LogEvents: cfg.Development.VerboseLogging,
	})
	defer gm.Close()

	srv := mcp.NewServer(cfg.Server.MCPServer.Name, version, gm, log.Logger)

	log.Info().
		Str("name", cfg.Server.MCPServer.Name).
		Int("max_games", cfg.Server.MCPServer.MaxGames).
		Msg("MCP stdio server ready")

	if err := srv.ServeStdio(); err != nil {
		log.Error().Err(err).Msg("MCP stdio server error")
		gm.Close()
		os.Exit(1)
	}
}
