package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/mitchelldurbincs/minesweeper/internal/config"
	"github.com/mitchelldurbincs/minesweeper/internal/grpc/gameserver"
	"github.com/mitchelldurbincs/minesweeper/internal/monitoring"
)

// options are the command line overrides; zero values defer to config
type options struct {
	configPath string
	host       string
	port       int
	logLevel   string
	maxGames   int
	reflection bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Path to config file")
	flag.IntVar(&o.port, "port", -1, "The server port (-1 to use config default)")
	flag.StringVar(&o.host, "host", "", "The server host (empty to use config default)")
	flag.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.IntVar(&o.maxGames, "max-games", -1, "Maximum concurrent games (-1 to use config default, 0 for unlimited)")
	flag.BoolVar(&o.reflection, "enable-reflection", false, "Enable gRPC reflection for debugging")
	flag.Parse()
	return o
}

// applyConfig fills every unset option from cfg
func (o *options) applyConfig(cfg *config.Config) {
	srv := cfg.Server.GRPCServer
	if o.port == -1 {
		o.port = srv.Port
	}
	if o.host == "" {
		o.host = srv.Host
	}
	if o.logLevel == "" {
		o.logLevel = cfg.Logging.Level
	}
	if o.maxGames == -1 {
		o.maxGames = srv.MaxGames
	}
	o.reflection = o.reflection || srv.EnableReflection
}

func main() {
	opts := parseFlags()

	if err := config.Init(opts.configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(os.Getenv("APP_ENV")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()
	opts.applyConfig(cfg)

	setupLogging(opts.logLevel, cfg.Logging.Format)

	if err := run(opts, cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Server shutdown complete")
}

func run(opts options, cfg *config.Config) error {
	srvCfg := cfg.Server.GRPCServer

	log.Info().
		Str("host", opts.host).
		Int("port", opts.port).
		Int("max_games", opts.maxGames).
		Int("game_ttl_s", srvCfg.GameTTL).
		Msg("Starting gRPC board server")

	gm := gameserver.NewGameManager(gameserver.ManagerConfig{
		MaxGames:        opts.maxGames,
		GameTTL:         time.Duration(srvCfg.GameTTL) * time.Second,
		CleanupInterval: time.Duration(srvCfg.CleanupInterval) * time.Second,
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

	monitor := monitoring.NewMonitor(log.Logger)
	monitor.Track("active_games", gm.GetActiveGames)
	monitor.Start()
	defer monitor.Stop()

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", opts.host, opts.port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		gameserver.LoggingInterceptor(log.Logger),
		gameserver.RecoveryInterceptor(log.Logger),
	))
	gameserver.RegisterBoardServiceServer(grpcServer, gameserver.NewServer(gm))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	setServing := func(st grpc_health_v1.HealthCheckResponse_ServingStatus) {
		healthServer.SetServingStatus("", st)
		healthServer.SetServingStatus(gameserver.ServiceName, st)
	}
	setServing(grpc_health_v1.HealthCheckResponse_SERVING)

	if opts.reflection {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	if path := config.ConfigFilePath(); path != "" {
		config.WatchConfig(func() {
			log.Info().Str("file", path).Msg("Config file changed; new game defaults apply after restart")
		})
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")
		serveErr <- grpcServer.Serve(lis)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	}

	setServing(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	// Give ongoing requests time to complete
	time.Sleep(time.Duration(srvCfg.GracefulShutdownDelay) * time.Second)

	log.Info().Int("games_dropped", gm.GetActiveGames()).Msg("Gracefully stopping gRPC server")
	grpcServer.GracefulStop()
	return nil
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if os.Getenv("APP_ENV") == "production" || format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}
