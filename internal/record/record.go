// Package record decodes stored endgame fragments into GameRecords.
package record

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hailam/movestats/internal/board"
)

// ErrMalformed marks a fragment that cannot be turned into a GameRecord.
var ErrMalformed = errors.New("malformed record")

// Default field names for the tracked player flags.
const (
	DefaultBlackFlag = "isBlack"
	DefaultWinFlag   = "isWin"
)

// GameRecord is one fragment: a starting position, the moves played from it
// and how the game ended for the tracked player.
type GameRecord struct {
	Name             string
	TrackedColor     board.Color
	BoardState       []board.PlacedPiece
	SideToMove       board.Color
	Moves            []string
	IsDraw           bool
	TrackedPlayerWon bool
	Meta             Meta
}

// Meta is the informational part of a fragment. None of it is required.
type Meta struct {
	Event           string `json:"event,omitempty"`
	Site            string `json:"site,omitempty"`
	Date            string `json:"date,omitempty"`
	Round           string `json:"round,omitempty"`
	Result          string `json:"result,omitempty"`
	White           string `json:"white,omitempty"`
	Black           string `json:"black,omitempty"`
	StatePieceCount int    `json:"statePieceCount,omitempty"`
	EndPieceCount   int    `json:"endPieceCount,omitempty"`
}

// Piece is the wire form of a placed piece.
type Piece struct {
	Type   string `json:"type"`
	Color  string `json:"color"`
	Square string `json:"square"`
}

// Codec converts between fragment JSON and GameRecords. The tracked
// player's color and win flags have corpus-specific names ("isDingBlack",
// "isCarlsenWin", ...), so they are configurable.
type Codec struct {
	BlackFlag string
	WinFlag   string
}

// NewCodec returns a Codec using the given flag names, falling back to
// the defaults for empty names.
func NewCodec(blackFlag, winFlag string) *Codec {
	if blackFlag == "" {
		blackFlag = DefaultBlackFlag
	}
	if winFlag == "" {
		winFlag = DefaultWinFlag
	}
	return &Codec{BlackFlag: blackFlag, WinFlag: winFlag}
}

// Decode parses one fragment. Errors wrap ErrMalformed.
func (d *Codec) Decode(name string, data []byte) (*GameRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, malformed(name, "%v", err)
	}

	rec := &GameRecord{Name: name}

	var isBlack bool
	if err := requireField(fields, d.BlackFlag, &isBlack); err != nil {
		return nil, malformed(name, "%v", err)
	}
	rec.TrackedColor = board.White
	if isBlack {
		rec.TrackedColor = board.Black
	}

	if err := requireField(fields, d.WinFlag, &rec.TrackedPlayerWon); err != nil {
		return nil, malformed(name, "%v", err)
	}
	if err := requireField(fields, "isDraw", &rec.IsDraw); err != nil {
		return nil, malformed(name, "%v", err)
	}
	if err := requireField(fields, "moves", &rec.Moves); err != nil {
		return nil, malformed(name, "%v", err)
	}

	var turn string
	if err := requireField(fields, "nextTurn", &turn); err != nil {
		return nil, malformed(name, "%v", err)
	}
	side, err := board.ParseColor(turn)
	if err != nil {
		return nil, malformed(name, "nextTurn: %v", err)
	}
	rec.SideToMove = side

	var pieces []Piece
	if err := requireField(fields, "boardState", &pieces); err != nil {
		return nil, malformed(name, "%v", err)
	}
	rec.BoardState = make([]board.PlacedPiece, 0, len(pieces))
	for i, p := range pieces {
		pp, err := p.Placed()
		if err != nil {
			return nil, malformed(name, "boardState[%d]: %v", i, err)
		}
		rec.BoardState = append(rec.BoardState, pp)
	}

	// Metadata is best effort; a fragment with odd metadata still counts.
	_ = json.Unmarshal(data, &rec.Meta)

	return rec, nil
}

// Encode renders a record as indented fragment JSON.
func (d *Codec) Encode(rec *GameRecord) ([]byte, error) {
	pieces := make([]Piece, len(rec.BoardState))
	for i, p := range rec.BoardState {
		pieces[i] = WirePiece(p)
	}
	moves := rec.Moves
	if moves == nil {
		moves = []string{}
	}

	out := map[string]any{
		d.BlackFlag:  rec.TrackedColor == board.Black,
		d.WinFlag:    rec.TrackedPlayerWon,
		"isDraw":     rec.IsDraw,
		"moves":      moves,
		"boardState": pieces,
		"nextTurn":   string(rec.SideToMove.Char()),
	}

	meta, err := json.Marshal(rec.Meta)
	if err != nil {
		return nil, err
	}
	var metaFields map[string]any
	if err := json.Unmarshal(meta, &metaFields); err != nil {
		return nil, err
	}
	for k, v := range metaFields {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}

	return json.MarshalIndent(out, "", "  ")
}

// Placed converts the wire piece into a board.PlacedPiece.
func (p Piece) Placed() (board.PlacedPiece, error) {
	pt, err := board.ParsePieceType(p.Type)
	if err != nil {
		return board.PlacedPiece{}, err
	}
	c, err := board.ParseColor(p.Color)
	if err != nil {
		return board.PlacedPiece{}, err
	}
	sq, err := board.ParseSquare(p.Square)
	if err != nil {
		return board.PlacedPiece{}, err
	}
	return board.PlacedPiece{Type: pt, Color: c, Square: sq}, nil
}

// WirePiece converts a placed piece into its wire form.
func WirePiece(p board.PlacedPiece) Piece {
	return Piece{
		Type:   string(p.Type.Char()),
		Color:  string(p.Color.Char()),
		Square: p.Square.String(),
	}
}

func requireField(fields map[string]json.RawMessage, key string, v any) error {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("missing field %q", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("field %q: %v", key, err)
	}
	return nil
}

func malformed(name, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformed, name, fmt.Sprintf(format, args...))
}
