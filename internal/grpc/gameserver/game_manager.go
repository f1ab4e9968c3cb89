package gameserver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	gameengine "github.com/mitchelldurbincs/minesweeper/internal/game"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/game/events"
	"github.com/mitchelldurbincs/minesweeper/internal/game/events/subscribers"
)

var (
	// ErrGameNotFound is returned for unknown or already removed game IDs
	ErrGameNotFound = errors.New("game not found")
	// ErrAtCapacity is returned when the manager already holds MaxGames games
	ErrAtCapacity = errors.New("server at capacity")
	// ErrIdempotencyConflict is returned when a key is reused for a different action
	ErrIdempotencyConflict = errors.New("idempotency key reused for a different action")
)

// GameParams describes a board to create. Zero fields fall back to the
// manager defaults.
type GameParams struct {
	Difficulty string
	Size       int
	MineTotal  int
	MaxRerolls int
	// Seed makes mine placement reproducible; zero picks a random seed
	Seed int64
}

// ManagerConfig holds the limits and defaults of a GameManager
type ManagerConfig struct {
	// MaxGames caps concurrent games; zero means unlimited
	MaxGames int
	// GameTTL is how long an untouched game is kept
	GameTTL time.Duration
	// CleanupInterval is the sweep period; zero disables the sweeper
	CleanupInterval time.Duration
	Defaults        GameParams
	Logger          zerolog.Logger
	// LogEvents attaches a logger subscriber to every game's event bus
	LogEvents bool
}

type gameInstance struct {
	id     string
	engine *gameengine.Engine
	mu     sync.Mutex

	createdAt    time.Time
	lastActivity time.Time

	idempotency *IdempotencyManager
}

// GameSummary is the listing entry for one game
type GameSummary struct {
	ID           string
	Difficulty   string
	Size         int
	MineTotal    int
	Moves        int
	Outcome      gameengine.Outcome
	CreatedAt    time.Time
	LastActivity time.Time
}

// GameManager owns every live board. Each board is guarded by its own mutex so
// requests against different games never contend.
type GameManager struct {
	mu       sync.RWMutex
	games    map[string]*gameInstance
	cfg      ManagerConfig
	logger   zerolog.Logger
	stop     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewGameManager creates a manager and starts its cleanup goroutine when
// cfg.CleanupInterval is positive. Call Close to stop it.
func NewGameManager(cfg ManagerConfig) *GameManager {
	gm := &GameManager{
		games:  make(map[string]*gameInstance),
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "GameManager").Logger(),
		stop:   make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		gm.wg.Add(1)
		go gm.runCleanup()
	}

	return gm
}

// CreateGame builds a new board and registers it
func (gm *GameManager) CreateGame(ctx context.Context, params GameParams) (gameengine.Snapshot, error) {
	gm.mu.RLock()
	currentGames := len(gm.games)
	gm.mu.RUnlock()

	if gm.cfg.MaxGames > 0 && currentGames >= gm.cfg.MaxGames {
		gm.logger.Warn().
			Int("current_games", currentGames).
			Int("max_games", gm.cfg.MaxGames).
			Msg("Rejecting game creation - server at capacity")
		return gameengine.Snapshot{}, fmt.Errorf("%w: %d/%d games active", ErrAtCapacity, currentGames, gm.cfg.MaxGames)
	}

	engineCfg, err := gm.engineConfig(params)
	if err != nil {
		return gameengine.Snapshot{}, err
	}

	engine, err := gameengine.NewEngine(ctx, engineCfg)
	if err != nil {
		return gameengine.Snapshot{}, err
	}

	now := time.Now()
	game := &gameInstance{
		id:           engine.GameID(),
		engine:       engine,
		createdAt:    now,
		lastActivity: now,
		idempotency:  NewIdempotencyManager(),
	}

	gm.mu.Lock()
	if gm.cfg.MaxGames > 0 && len(gm.games) >= gm.cfg.MaxGames {
		gm.mu.Unlock()
		return gameengine.Snapshot{}, fmt.Errorf("%w: %d/%d games active", ErrAtCapacity, gm.cfg.MaxGames, gm.cfg.MaxGames)
	}
	gm.games[game.id] = game
	currentCount := len(gm.games)
	gm.mu.Unlock()

	gm.logger.Info().
		Str("game_id", game.id).
		Int("current_games", currentCount).
		Int("max_games", gm.cfg.MaxGames).
		Int("size", engine.Size()).
		Int("mine_total", engine.MineTotal()).
		Msg("Successfully created new game")

	return engine.Snapshot(), nil
}

// engineConfig resolves params against the manager defaults
func (gm *GameManager) engineConfig(params GameParams) (gameengine.GameConfig, error) {
	if params.Difficulty == "" && params.Size == 0 {
		params.Difficulty = gm.cfg.Defaults.Difficulty
		params.Size = gm.cfg.Defaults.Size
		if params.MineTotal == 0 {
			params.MineTotal = gm.cfg.Defaults.MineTotal
		}
	}
	if params.MaxRerolls == 0 {
		params.MaxRerolls = gm.cfg.Defaults.MaxRerolls
	}

	cfg := gameengine.GameConfig{
		Size:       params.Size,
		MineTotal:  params.MineTotal,
		MaxRerolls: params.MaxRerolls,
		Logger:     gm.cfg.Logger,
		GameID:     uuid.New().String(),
	}
	if params.Difficulty != "" {
		d, err := core.ParseDifficulty(params.Difficulty)
		if err != nil {
			return cfg, fmt.Errorf("difficulty %q: %w", params.Difficulty, err)
		}
		cfg.Difficulty = d
	}
	if params.Seed != 0 {
		cfg.Rng = rand.New(rand.NewSource(params.Seed))
	}

	bus := events.NewEventBusWithLogger(gm.cfg.Logger)
	if gm.cfg.LogEvents {
		bus.Subscribe(subscribers.NewLoggerSubscriber("game-log-"+cfg.GameID, gm.cfg.Logger, zerolog.DebugLevel))
	}
	cfg.EventBus = bus

	return cfg, nil
}

// getGame retrieves a game by ID
func (gm *GameManager) getGame(gameID string) (*gameInstance, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	return game, nil
}

// withGame runs fn on the game's engine while holding the game's lock
func (gm *GameManager) withGame(gameID string, fn func(g *gameInstance) error) error {
	game, err := gm.getGame(gameID)
	if err != nil {
		return err
	}

	game.mu.Lock()
	defer game.mu.Unlock()
	game.lastActivity = time.Now()
	return fn(game)
}

// Reveal applies a reveal to the game and returns the result with the new snapshot
func (gm *GameManager) Reveal(gameID string, x, y int) (gameengine.Result, gameengine.Snapshot, error) {
	return gm.Apply(gameID, core.Action{Kind: core.ActionReveal, At: core.NewCoordinate(x, y)}, "")
}

// ToggleFlag applies a flag toggle to the game and returns the result with the new snapshot
func (gm *GameManager) ToggleFlag(gameID string, x, y int) (gameengine.Result, gameengine.Snapshot, error) {
	return gm.Apply(gameID, core.Action{Kind: core.ActionFlag, At: core.NewCoordinate(x, y)}, "")
}

// Apply runs action on the game. A non-empty idempotencyKey that was already
// used on this game returns the recorded outcome without touching the board.
func (gm *GameManager) Apply(gameID string, action core.Action, idempotencyKey string) (gameengine.Result, gameengine.Snapshot, error) {
	var out actionOutcome
	err := gm.withGame(gameID, func(g *gameInstance) error {
		if cached, ok := g.idempotency.Check(idempotencyKey); ok {
			if cached.action != action {
				return fmt.Errorf("idempotency key %q: %w", idempotencyKey, ErrIdempotencyConflict)
			}
			gm.logger.Debug().
				Str("game_id", gameID).
				Str("idempotency_key", idempotencyKey).
				Msg("Returning cached response for idempotent request")
			out = cached
			return nil
		}

		res, err := g.engine.Apply(action)
		out = actionOutcome{action: action, result: res, snapshot: g.engine.Snapshot()}
		if err != nil {
			return err
		}
		g.idempotency.Store(idempotencyKey, out)
		return nil
	})
	return out.result, out.snapshot, err
}

// Snapshot returns the observable state of a game
func (gm *GameManager) Snapshot(gameID string) (gameengine.Snapshot, error) {
	var snap gameengine.Snapshot
	err := gm.withGame(gameID, func(g *gameInstance) error {
		snap = g.engine.Snapshot()
		return nil
	})
	return snap, err
}

// Board returns the text dump of a game
func (gm *GameManager) Board(gameID string) (string, error) {
	var board string
	err := gm.withGame(gameID, func(g *gameInstance) error {
		board = g.engine.Board()
		return nil
	})
	return board, err
}

// Stats returns the statistics of a game
func (gm *GameManager) Stats(gameID string) (gameengine.Stats, error) {
	var st gameengine.Stats
	err := gm.withGame(gameID, func(g *gameInstance) error {
		st = g.engine.Stats()
		return nil
	})
	return st, err
}

// DeleteGame removes a game. It reports ErrGameNotFound for unknown IDs.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	_, exists := gm.games[gameID]
	delete(gm.games, gameID)
	remaining := len(gm.games)
	gm.mu.Unlock()

	if !exists {
		return fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}
	gm.logger.Info().
		Str("game_id", gameID).
		Int("remaining", remaining).
		Msg("Game deleted")
	return nil
}

// ListGames returns a summary of every game, oldest first
func (gm *GameManager) ListGames() []GameSummary {
	gm.mu.RLock()
	gameRefs := make([]*gameInstance, 0, len(gm.games))
	for _, game := range gm.games {
		gameRefs = append(gameRefs, game)
	}
	gm.mu.RUnlock()

	out := make([]GameSummary, 0, len(gameRefs))
	for _, game := range gameRefs {
		game.mu.Lock()
		out = append(out, GameSummary{
			ID:           game.id,
			Difficulty:   game.engine.Difficulty(),
			Size:         game.engine.Size(),
			MineTotal:    game.engine.MineTotal(),
			Moves:        game.engine.Stats().Moves,
			Outcome:      game.engine.Outcome(),
			CreatedAt:    game.createdAt,
			LastActivity: game.lastActivity,
		})
		game.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// GetActiveGames returns the number of active games
func (gm *GameManager) GetActiveGames() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (gm *GameManager) Close() {
	gm.stopOnce.Do(func() {
		close(gm.stop)
	})
	gm.wg.Wait()
}

// runCleanup periodically removes finished and abandoned games
func (gm *GameManager) runCleanup() {
	defer gm.wg.Done()

	ticker := time.NewTicker(gm.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case now := <-ticker.C:
			gm.cleanupGames(now)
		}
	}
}

// cleanupGames removes games idle for longer than the TTL
func (gm *GameManager) cleanupGames(now time.Time) {
	if gm.cfg.GameTTL <= 0 {
		return
	}

	// Phase 1: Collect game references without holding GameManager lock while accessing game locks
	gm.mu.RLock()
	gameRefs := make([]*gameInstance, 0, len(gm.games))
	for _, game := range gm.games {
		gameRefs = append(gameRefs, game)
	}
	gm.mu.RUnlock()

	// Phase 2: Check each game independently (no nested locks)
	var toDelete []string
	for _, game := range gameRefs {
		game.mu.Lock()
		idle := now.Sub(game.lastActivity)
		finished := game.engine.IsGameOver()
		createdAt := game.createdAt
		game.mu.Unlock()

		if idle <= gm.cfg.GameTTL {
			continue
		}

		reason := "game abandoned (no activity)"
		if finished {
			reason = "finished game TTL expired"
		}
		toDelete = append(toDelete, game.id)
		gm.logger.Info().
			Str("game_id", game.id).
			Str("reason", reason).
			Dur("age", now.Sub(createdAt)).
			Dur("inactive", idle).
			Msg("Cleaning up game")
	}

	if len(toDelete) == 0 {
		return
	}

	// Phase 3: Remove games from the map with a single lock
	gm.mu.Lock()
	for _, gameID := range toDelete {
		delete(gm.games, gameID)
	}
	remainingCount := len(gm.games)
	gm.mu.Unlock()

	gm.logger.Info().
		Int("cleaned", len(toDelete)).
		Int("remaining", remainingCount).
		Msg("Game cleanup completed")
}
