package gameserver

import (
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	gameengine "github.com/mitchelldurbincs/minesweeper/internal/game"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

// Row symbols used by EncodeRows
const (
	RowHidden    = '#'
	RowFlagged   = 'F'
	RowMine      = '*'
	RowDetonated = 'X'
	RowEmpty     = '.'
)

// EncodeRows renders a snapshot as one string per row. Revealed cells show
// their count (RowEmpty for zero); mines only appear once the game is lost.
func EncodeRows(s gameengine.Snapshot) []string {
	rows := make([]string, s.Size)
	var sb strings.Builder
	for y := 0; y < s.Size; y++ {
		sb.Reset()
		for x := 0; x < s.Size; x++ {
			v := s.Cells[y*s.Size+x]
			switch v.State {
			case gameengine.CellRevealed:
				if v.Adjacent == 0 {
					sb.WriteByte(RowEmpty)
				} else {
					sb.WriteByte(byte('0' + v.Adjacent))
				}
			case gameengine.CellFlagged:
				sb.WriteByte(RowFlagged)
			case gameengine.CellMine:
				if s.Detonated != nil && s.Detonated.X == x && s.Detonated.Y == y {
					sb.WriteByte(RowDetonated)
				} else {
					sb.WriteByte(RowMine)
				}
			default:
				sb.WriteByte(RowHidden)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// snapshotToStruct converts a snapshot to its wire form
func snapshotToStruct(s gameengine.Snapshot) *structpb.Struct {
	rows := EncodeRows(s)
	rowValues := make([]*structpb.Value, len(rows))
	for i, r := range rows {
		rowValues[i] = structpb.NewStringValue(r)
	}

	fields := map[string]*structpb.Value{
		"game_id":      structpb.NewStringValue(s.GameID),
		"size":         structpb.NewNumberValue(float64(s.Size)),
		"mine_total":   structpb.NewNumberValue(float64(s.MineTotal)),
		"flags_placed": structpb.NewNumberValue(float64(s.FlagsPlaced)),
		"moves":        structpb.NewNumberValue(float64(s.Moves)),
		"phase":        structpb.NewStringValue(s.Phase.String()),
		"outcome":      structpb.NewStringValue(s.Outcome.String()),
		"rows":         structpb.NewListValue(&structpb.ListValue{Values: rowValues}),
	}
	if s.Detonated != nil {
		fields["detonated"] = structpb.NewStructValue(coordinateToStruct(*s.Detonated))
	}
	return &structpb.Struct{Fields: fields}
}

// resultToStruct converts an action result to its wire form
func resultToStruct(r gameengine.Result) *structpb.Struct {
	revealed := make([]*structpb.Value, len(r.Revealed))
	for i, c := range r.Revealed {
		revealed[i] = structpb.NewStructValue(coordinateToStruct(c))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"kind":     structpb.NewStringValue(r.Kind.String()),
		"outcome":  structpb.NewStringValue(r.Outcome.String()),
		"flagged":  structpb.NewBoolValue(r.Flagged),
		"changed":  structpb.NewBoolValue(r.Changed()),
		"revealed": structpb.NewListValue(&structpb.ListValue{Values: revealed}),
	}}
}

// summaryToStruct converts a listing entry to its wire form
func summaryToStruct(g GameSummary) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"game_id":       structpb.NewStringValue(g.ID),
		"difficulty":    structpb.NewStringValue(g.Difficulty),
		"size":          structpb.NewNumberValue(float64(g.Size)),
		"mine_total":    structpb.NewNumberValue(float64(g.MineTotal)),
		"moves":         structpb.NewNumberValue(float64(g.Moves)),
		"outcome":       structpb.NewStringValue(g.Outcome.String()),
		"created_at":    structpb.NewStringValue(g.CreatedAt.UTC().Format(time.RFC3339Nano)),
		"last_activity": structpb.NewStringValue(g.LastActivity.UTC().Format(time.RFC3339Nano)),
	}}
}

func coordinateToStruct(c core.Coordinate) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"x": structpb.NewNumberValue(float64(c.X)),
		"y": structpb.NewNumberValue(float64(c.Y)),
	}}
}

// toStatus maps engine and manager errors to gRPC status codes
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, ErrGameNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ErrAtCapacity):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, core.ErrGameOver):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, core.ErrInvalidCoordinates),
		errors.Is(err, core.ErrInvalidBoardSize),
		errors.Is(err, core.ErrInvalidMineTotal),
		errors.Is(err, core.ErrTooManyMines),
		errors.Is(err, core.ErrUnknownDifficulty),
		errors.Is(err, ErrIdempotencyConflict):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
