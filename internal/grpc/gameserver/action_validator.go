package gameserver

import (
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

// cellRequest is a validated Reveal or ToggleFlag request
type cellRequest struct {
	GameID         string
	X, Y           int
	IdempotencyKey string
}

// ActionValidator checks request payloads before they reach the manager.
// Bounds are left to the engine, which knows the board size.
type ActionValidator struct{}

// NewActionValidator creates a new validator instance
func NewActionValidator() *ActionValidator {
	return &ActionValidator{}
}

// ValidateGameRequest reads the game_id field
func (v *ActionValidator) ValidateGameRequest(req *structpb.Struct) (string, error) {
	gameID, err := stringField(req, "game_id", true)
	if err != nil {
		return "", err
	}
	return gameID, nil
}

// ValidateCellRequest reads game_id, x, y and the optional idempotency_key
func (v *ActionValidator) ValidateCellRequest(req *structpb.Struct) (cellRequest, error) {
	var out cellRequest
	var err error

	if out.GameID, err = stringField(req, "game_id", true); err != nil {
		return out, err
	}
	if out.X, err = intField(req, "x", true); err != nil {
		return out, err
	}
	if out.Y, err = intField(req, "y", true); err != nil {
		return out, err
	}
	if out.IdempotencyKey, err = stringField(req, "idempotency_key", false); err != nil {
		return out, err
	}
	return out, nil
}

// ValidateCreateRequest reads the optional board parameters
func (v *ActionValidator) ValidateCreateRequest(req *structpb.Struct) (GameParams, error) {
	var p GameParams
	var err error

	if p.Difficulty, err = stringField(req, "difficulty", false); err != nil {
		return p, err
	}
	if p.Difficulty != "" {
		if _, err := core.ParseDifficulty(p.Difficulty); err != nil {
			return p, status.Errorf(codes.InvalidArgument, "difficulty %q: %v", p.Difficulty, err)
		}
	}
	if p.Size, err = intField(req, "size", false); err != nil {
		return p, err
	}
	if p.MineTotal, err = intField(req, "mine_total", false); err != nil {
		return p, err
	}
	if p.MaxRerolls, err = intField(req, "max_rerolls", false); err != nil {
		return p, err
	}
	seed, err := intField(req, "seed", false)
	if err != nil {
		return p, err
	}
	p.Seed = int64(seed)

	// zero selects the difficulty preset
	if p.Size != 0 && (p.Size < core.MinBoardSize || p.Size > core.MaxBoardSize) {
		return p, status.Errorf(codes.InvalidArgument, "size must be between %d and %d, got %d",
			core.MinBoardSize, core.MaxBoardSize, p.Size)
	}
	if p.MaxRerolls < 0 {
		return p, status.Errorf(codes.InvalidArgument, "max_rerolls must be non-negative, got %d", p.MaxRerolls)
	}
	return p, nil
}

func stringField(req *structpb.Struct, name string, required bool) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok || v.GetKind() == nil {
		if required {
			return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
		}
		return "", nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Errorf(codes.InvalidArgument, "%s must be a string", name)
	}
	if required && s.StringValue == "" {
		return "", status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return s.StringValue, nil
}

func intField(req *structpb.Struct, name string, required bool) (int, error) {
	v, ok := req.GetFields()[name]
	if !ok || v.GetKind() == nil {
		if required {
			return 0, status.Errorf(codes.InvalidArgument, "%s is required", name)
		}
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	f := n.NumberValue
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer, got %v", name, f)
	}
	return int(f), nil
}
