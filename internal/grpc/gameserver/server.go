package gameserver

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

// Server implements the BoardService gRPC server
type Server struct {
	// Game manager for handling all game instances
	gameManager *GameManager

	// Validator for request payloads
	validator *ActionValidator
}

// NewServer creates a new board server on top of gm
func NewServer(gm *GameManager) *Server {
	return &Server{
		gameManager: gm,
		validator:   NewActionValidator(),
	}
}

// GameManager returns the manager backing this server
func (s *Server) GameManager() *GameManager {
	return s.gameManager
}

// CreateGame creates a new board. Every request field is optional.
func (s *Server) CreateGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	params, err := s.validator.ValidateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	snap, err := s.gameManager.CreateGame(ctx, params)
	if err != nil {
		return nil, toStatus(err)
	}

	log.Info().
		Str("game_id", snap.GameID).
		Int("size", snap.Size).
		Int("mine_total", snap.MineTotal).
		Msg("Created new game")

	return snapshotToStruct(snap), nil
}

// GetGame returns the observable board. include_board adds the text dump.
func (s *Server) GetGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := s.validator.ValidateGameRequest(req)
	if err != nil {
		return nil, err
	}

	snap, err := s.gameManager.Snapshot(gameID)
	if err != nil {
		return nil, toStatus(err)
	}
	out := snapshotToStruct(snap)

	if req.GetFields()["include_board"].GetBoolValue() {
		board, err := s.gameManager.Board(gameID)
		if err != nil {
			return nil, toStatus(err)
		}
		out.Fields["board"] = structpb.NewStringValue(board)
	}
	return out, nil
}

// Reveal uncovers one cell
func (s *Server) Reveal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.applyCell(req, core.ActionReveal)
}

// ToggleFlag flips the flag on one cell
func (s *Server) ToggleFlag(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.applyCell(req, core.ActionFlag)
}

func (s *Server) applyCell(req *structpb.Struct, kind core.ActionKind) (*structpb.Struct, error) {
	cr, err := s.validator.ValidateCellRequest(req)
	if err != nil {
		return nil, err
	}

	action := core.Action{Kind: kind, At: core.NewCoordinate(cr.X, cr.Y)}
	log.Debug().
		Str("game_id", cr.GameID).
		Str("action_type", kind.String()).
		Str("at", action.At.String()).
		Str("idempotency_key", cr.IdempotencyKey).
		Msg("Received action submission")

	res, snap, err := s.gameManager.Apply(cr.GameID, action, cr.IdempotencyKey)
	if err != nil {
		return nil, toStatus(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"result": structpb.NewStructValue(resultToStruct(res)),
		"game":   structpb.NewStructValue(snapshotToStruct(snap)),
	}}, nil
}

// DeleteGame removes a board
func (s *Server) DeleteGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	gameID, err := s.validator.ValidateGameRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.gameManager.DeleteGame(gameID); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"game_id": structpb.NewStringValue(gameID),
		"deleted": structpb.NewBoolValue(true),
	}}, nil
}

// ListGames summarises every live board
func (s *Server) ListGames(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	games := s.gameManager.ListGames()
	values := make([]*structpb.Value, len(games))
	for i, g := range games {
		values[i] = structpb.NewStructValue(summaryToStruct(g))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"games": structpb.NewListValue(&structpb.ListValue{Values: values}),
		"count": structpb.NewNumberValue(float64(len(games))),
	}}, nil
}
