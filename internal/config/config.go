package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Demo        DemoConfig        `mapstructure:"demo"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds board construction settings
type GameConfig struct {
	// Difficulty is one of easy, medium or hard. Ignored when Size is set.
	Difficulty string `mapstructure:"difficulty"`
	// Size overrides the difficulty preset when non-zero
	Size int `mapstructure:"size"`
	// MineTotal overrides the N²/10 default when non-zero
	MineTotal int `mapstructure:"mine_total"`
	// MaxRerolls bounds how often the first reveal may re-place the mines
	MaxRerolls int `mapstructure:"max_rerolls"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	GRPCServer GRPCServerConfig `mapstructure:"grpc_server"`
	MCPServer  MCPServerConfig  `mapstructure:"mcp_server"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	MaxGames              int    `mapstructure:"max_games"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	// GameTTL is how long, in seconds, an untouched game is kept
	GameTTL int `mapstructure:"game_ttl"`
	// CleanupInterval is the sweep period in seconds
	CleanupInterval int `mapstructure:"cleanup_interval"`
}

// MCPServerConfig holds MCP tool server configuration
type MCPServerConfig struct {
	Name     string `mapstructure:"name"`
	MaxGames int    `mapstructure:"max_games"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DemoConfig holds settings for the auto-player binary
type DemoConfig struct {
	Games int   `mapstructure:"games"`
	Seed  int64 `mapstructure:"seed"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging    bool `mapstructure:"verbose_logging"`
	RevealMinesInDump bool `mapstructure:"reveal_mines_in_dump"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.difficulty", "easy")
	v.SetDefault("game.size", 0)
	v.SetDefault("game.mine_total", 0)
	v.SetDefault("game.max_rerolls", 1000)

	// gRPC server defaults
	v.SetDefault("server.grpc_server.host", "0.0.0.0")
	v.SetDefault("server.grpc_server.port", 50051)
	v.SetDefault("server.grpc_server.max_games", 100)
	v.SetDefault("server.grpc_server.enable_reflection", true)
	v.SetDefault("server.grpc_server.graceful_shutdown_delay", 5)
	v.SetDefault("server.grpc_server.game_ttl", 3600)
	v.SetDefault("server.grpc_server.cleanup_interval", 60)

	// MCP server defaults
	v.SetDefault("server.mcp_server.name", "minesweeper")
	v.SetDefault("server.mcp_server.max_games", 16)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Demo defaults
	v.SetDefault("demo.games", 1)
	v.SetDefault("demo.seed", 0)

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.reveal_mines_in_dump", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/minesweeper")
	}

	// MSW_GAME_DIFFICULTY overrides game.difficulty
	v.SetEnvPrefix("MSW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "" && errors.Is(err, os.ErrNotExist):
			// Specific file requested but not found - use defaults
		case configPath == "" && errors.As(err, &notFound):
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	_ = v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		_ = v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
	v.WatchConfig()
}

// BoardSize resolves the configured board dimension: an explicit size wins,
// otherwise the difficulty preset is used.
func (g GameConfig) BoardSize() (int, error) {
	if g.Size != 0 {
		return g.Size, nil
	}
	d, err := core.ParseDifficulty(g.Difficulty)
	if err != nil {
		return 0, err
	}
	return d.Size(), nil
}

// Mines resolves the configured mine total for a board of size n
func (g GameConfig) Mines(n int) int {
	if g.MineTotal != 0 {
		return g.MineTotal
	}
	return core.DefaultMineTotal(n)
}

// Validate validates the configuration values
func Validate(c *Config) error {
	n, err := c.Game.BoardSize()
	if err != nil {
		return fmt.Errorf("game.difficulty: %w", err)
	}
	if n < core.MinBoardSize || n > core.MaxBoardSize {
		return fmt.Errorf("game.size must be between %d and %d, got %d", core.MinBoardSize, core.MaxBoardSize, n)
	}
	if c.Game.MineTotal < 0 {
		return fmt.Errorf("game.mine_total must be non-negative")
	}
	if c.Game.Mines(n) >= n*n {
		return fmt.Errorf("game.mine_total must be less than %d for a %dx%d board", n*n, n, n)
	}
	if c.Game.MaxRerolls < 0 {
		return fmt.Errorf("game.max_rerolls must be non-negative")
	}

	if c.Server.GRPCServer.Port <= 0 || c.Server.GRPCServer.Port > 65535 {
		return fmt.Errorf("server.grpc_server.port must be between 1 and 65535")
	}
	if c.Server.GRPCServer.MaxGames <= 0 {
		return fmt.Errorf("server.grpc_server.max_games must be positive")
	}
	if c.Server.GRPCServer.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc_server.graceful_shutdown_delay must be non-negative")
	}
	// zero disables the idle sweep
	if c.Server.GRPCServer.GameTTL < 0 {
		return fmt.Errorf("server.grpc_server.game_ttl must be non-negative")
	}
	if c.Server.GRPCServer.CleanupInterval < 0 {
		return fmt.Errorf("server.grpc_server.cleanup_interval must be non-negative")
	}
	if c.Server.MCPServer.MaxGames <= 0 {
		return fmt.Errorf("server.mcp_server.max_games must be positive")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Demo.Games < 0 {
		return fmt.Errorf("demo.games must be non-negative")
	}

	return nil
}
