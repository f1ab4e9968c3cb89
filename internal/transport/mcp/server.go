package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	gameengine "github.com/mitchelldurbincs/minesweeper/internal/game"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/grpc/gameserver"
)

const instructions = `Minesweeper - MCP Interface

GAME OBJECTIVE:
Reveal every safe cell and flag every mine. Revealing a mine loses the game.
The first reveal of a game is always safe.

BOARD LEGEND:
■ hidden, ⚑ flag, · empty (no adjacent mines), 1-8 adjacent mine count,
* mine and X detonated mine (only once the game is lost).
Coordinates are zero-based: x is the column, y is the row.

AVAILABLE TOOLS:
- new_game: Start a board (difficulty easy/medium/hard, or a custom size)
- reveal: Uncover a cell
- flag: Place or remove a flag on a hidden cell
- game_state: Show the board and counters
- list_games: List active games`

// Server exposes a GameManager as MCP tools
type Server struct {
	manager   *gameserver.GameManager
	mcpServer *server.MCPServer
	logger    zerolog.Logger
}

// NewServer creates the MCP server and registers every tool
func NewServer(name, version string, gm *gameserver.GameManager, logger zerolog.Logger) *Server {
	s := &Server{
		manager: gm,
		logger:  logger.With().Str("component", "MCPServer").Logger(),
	}
	s.mcpServer = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the input closes
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func cellSchema(action string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"game_id": map[string]interface{}{
				"type":        "string",
				"description": "Game ID returned by new_game",
			},
			"x": map[string]interface{}{
				"type":        "integer",
				"description": "Column of the cell to " + action,
			},
			"y": map[string]interface{}{
				"type":        "integer",
				"description": "Row of the cell to " + action,
			},
		},
		Required: []string{"game_id", "x", "y"},
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a new Minesweeper board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"difficulty": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"easy", "medium", "hard"},
					"description": "Preset board: easy 9x9, medium 16x16, hard 25x25",
				},
				"size": map[string]interface{}{
					"type":        "integer",
					"minimum":     core.MinBoardSize,
					"maximum":     core.MaxBoardSize,
					"description": "Custom board edge length, overrides difficulty",
				},
				"mine_total": map[string]interface{}{
					"type":        "integer",
					"description": "Number of mines, defaults to a tenth of the cells",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Seed for a reproducible mine layout",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reveal",
		Description: "Reveal a cell. Cells without adjacent mines open their whole region.",
		InputSchema: cellSchema("reveal"),
	}, s.handleReveal)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "flag",
		Description: "Toggle the flag on a hidden cell",
		InputSchema: cellSchema("flag"),
	}, s.handleFlag)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Show the board and its counters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game ID",
				},
			},
			Required: []string{"game_id"},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all active games",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListGames)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads an integral JSON number. Missing arguments return ok false.
func intArg(args map[string]interface{}, name string) (int, bool, error) {
	raw, exists := args[name]
	if !exists || raw == nil {
		return 0, false, nil
	}
	f, ok := raw.(float64)
	if !ok {
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false, fmt.Errorf("%s must be an integer, got %v", name, f)
	}
	return int(f), true, nil
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	var params gameserver.GameParams
	params.Difficulty, _ = args["difficulty"].(string)
	for name, dst := range map[string]*int{"size": &params.Size, "mine_total": &params.MineTotal} {
		v, _, err := intArg(args, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		*dst = v
	}
	if params.Size != 0 && (params.Size < core.MinBoardSize || params.Size > core.MaxBoardSize) {
		return mcp.NewToolResultError(fmt.Sprintf("size must be between %d and %d, got %d",
			core.MinBoardSize, core.MaxBoardSize, params.Size)), nil
	}
	seed, _, err := intArg(args, "seed")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params.Seed = int64(seed)

	snap, err := s.manager.CreateGame(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	board, err := s.manager.Board(snap.GameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info().Str("game_id", snap.GameID).Int("size", snap.Size).Msg("Game created over MCP")

	result := fmt.Sprintf("Created game: %s\nBoard: %dx%d with %d mines\n\n%s",
		snap.GameID, snap.Size, snap.Size, snap.MineTotal, board)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleReveal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleCell(request, s.manager.Reveal)
}

func (s *Server) handleFlag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.handleCell(request, s.manager.ToggleFlag)
}

type cellAction func(gameID string, x, y int) (gameengine.Result, gameengine.Snapshot, error)

func (s *Server) handleCell(request mcp.CallToolRequest, act cellAction) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	if gameID == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}

	coords := [2]int{}
	for i, name := range []string{"x", "y"} {
		v, ok, err := intArg(args, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !ok {
			return mcp.NewToolResultError(name + " is required"), nil
		}
		coords[i] = v
	}

	res, _, err := act(gameID, coords[0], coords[1])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	board, err := s.manager.Board(gameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatResult(res) + "\n\n" + board), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	gameID, _ := args["game_id"].(string)
	if gameID == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}

	st, err := s.manager.Stats(gameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	board, err := s.manager.Board(gameID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Game: %s\nOutcome: %s\nMoves: %d\nFlags placed: %d\nMines left: %d\nHidden cells: %d\n\n%s",
		gameID, st.Outcome, st.Moves, st.FlagsPlaced, st.MinesLeft, st.HiddenCells, board)
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games := s.manager.ListGames()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Active Games (%d):\n\n", len(games))
	for _, g := range games {
		fmt.Fprintf(&sb, "- %s (%s %dx%d, %d mines, %d moves, %s, created %s)\n",
			g.ID, g.Difficulty, g.Size, g.Size, g.MineTotal, g.Moves, g.Outcome, g.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatResult(r gameengine.Result) string {
	switch r.Kind {
	case gameengine.ResultRevealed:
		return fmt.Sprintf("Revealed %d cell(s).", len(r.Revealed))
	case gameengine.ResultFlagToggled:
		if r.Flagged {
			return "Flag placed."
		}
		return "Flag removed."
	case gameengine.ResultWon:
		return "All mines found. You won!"
	case gameengine.ResultLost:
		return "Boom! You revealed a mine. Game lost."
	default:
		return "Nothing changed: the cell is already revealed or flagged."
	}
}
