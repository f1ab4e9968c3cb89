package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/game/events"
	"github.com/mitchelldurbincs/minesweeper/internal/game/mapgen"
	"github.com/mitchelldurbincs/minesweeper/internal/game/processor"
	"github.com/mitchelldurbincs/minesweeper/internal/game/rules"
	"github.com/mitchelldurbincs/minesweeper/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds the parameters for a new board
type GameConfig struct {
	// Difficulty picks the preset size when Size is zero
	Difficulty core.Difficulty
	// Size overrides the difficulty preset when non-zero
	Size int
	// MineTotal overrides the N²/10 default when non-zero
	MineTotal int
	// MaxRerolls bounds first-move re-placement; zero uses DefaultMaxRerolls
	MaxRerolls int
	Rng        *rand.Rand
	// Placer lays the mines; defaults to a random mapgen.Generator over Rng
	Placer mapgen.Placer
	Logger zerolog.Logger
	GameID string
	// EventBus receives game events; a private bus is created when nil
	EventBus *events.EventBus
	// Recorder observes every applied action, optional
	Recorder MoveRecorder
	// RevealMines makes Board() print mines while the game is running
	RevealMines bool
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// NewEngine builds a board, places its mines and leaves it waiting for the first reveal
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	board, err := ei.newBoard()
	if err != nil {
		return nil, fmt.Errorf("board construction failed: %w", err)
	}

	engine := ei.createEngine(board)

	if err := ei.config.Placer.Place(board); err != nil {
		return nil, fmt.Errorf("mine placement failed: %w", err)
	}

	if err := engine.stateMachine.TransitionTo(states.PhaseAwaitingFirstMove, "Mines placed"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to AwaitingFirstMove state")
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		board.N,
		board.MineTotal,
		engine.difficulty,
	))

	ei.logger.Info().
		Int("size", board.N).
		Int("mine_total", board.MineTotal).
		Str("difficulty", engine.difficulty).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.Placer == nil {
		ei.config.Placer = mapgen.NewGenerator(ei.config.Rng)
	}

	if ei.config.GameID == "" {
		ei.config.GameID = uuid.New().String()
	}
	ei.logger = ei.logger.With().Str("game_id", ei.config.GameID).Logger()

	if ei.config.MaxRerolls <= 0 {
		ei.config.MaxRerolls = DefaultMaxRerolls()
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}
}

// newBoard resolves size and mine total and allocates an empty board
func (ei *EngineInitializer) newBoard() (*core.Board, error) {
	n := ei.config.Size
	if n == 0 {
		n = ei.config.Difficulty.Size()
		if n == 0 {
			return nil, fmt.Errorf("difficulty %d: %w", ei.config.Difficulty, core.ErrUnknownDifficulty)
		}
	}

	mines := ei.config.MineTotal
	if mines == 0 {
		mines = core.DefaultMineTotal(n)
	}

	return core.NewBoard(n, mines)
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(board *core.Board) *Engine {
	gameContext := states.NewGameContext(ei.config.GameID, ei.logger)
	stateMachine := states.NewStateMachine(gameContext, ei.config.EventBus)

	difficulty := "custom"
	if d, ok := core.DifficultyForSize(board.N); ok && board.MineTotal == d.MineTotal() {
		difficulty = d.String()
	}

	return &Engine{
		gs:              &GameState{Board: board},
		placer:          ei.config.Placer,
		maxRerolls:      ei.config.MaxRerolls,
		logger:          ei.logger,
		actionProcessor: processor.NewActionProcessor(ei.logger),
		winCondition:    rules.NewWinConditionChecker(ei.logger),
		legalMoves:      rules.NewLegalMoveCalculator(),
		eventBus:        ei.config.EventBus,
		gameID:          ei.config.GameID,
		difficulty:      difficulty,
		stateMachine:    stateMachine,
		recorder:        ei.config.Recorder,
		revealMines:     ei.config.RevealMines,
		createdAt:       time.Now(),
	}
}
