// Package rules adapts a chess rules engine to the small surface the
// replay code needs: seed a position, ask whose turn it is, look at the
// board and play SAN moves.
package rules

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"

	"github.com/hailam/movestats/internal/board"
)

// ErrIllegalMove is returned when a move cannot be played in the current position.
var ErrIllegalMove = errors.New("illegal move")

// ErrNoPosition is returned when a Provider is used before Setup.
var ErrNoPosition = errors.New("no position set up")

// Applied describes a move that was just played.
type Applied struct {
	Mover    board.PieceType
	Captured bool
}

// Provider is the rules capability used by the replay classifier.
type Provider interface {
	Setup(pieces []board.PlacedPiece, sideToMove board.Color) error
	SideToMove() board.Color
	Pieces() []board.PlacedPiece
	Apply(san string) (Applied, error)
}

// Game is a Provider backed by github.com/notnil/chess.
// A Game is not safe for concurrent use; give each worker its own.
type Game struct {
	pos *chess.Position
}

var _ Provider = (*Game)(nil)

// NewGame returns a Game with no position. Call Setup before use.
func NewGame() *Game {
	return &Game{}
}

// Setup replaces the live position with exactly the given pieces.
func (g *Game) Setup(pieces []board.PlacedPiece, sideToMove board.Color) error {
	fen, err := board.ToFEN(pieces, sideToMove)
	if err != nil {
		return err
	}
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return fmt.Errorf("load %q: %w", fen, err)
	}
	g.pos = pos
	return nil
}

// Position returns the live notnil position, or nil before Setup.
func (g *Game) Position() *chess.Position {
	return g.pos
}

// SideToMove returns the color to move in the live position.
func (g *Game) SideToMove() board.Color {
	if g.pos == nil {
		return board.NoColor
	}
	return fromColor(g.pos.Turn())
}

// Pieces returns a snapshot of every piece on the board.
func (g *Game) Pieces() []board.PlacedPiece {
	if g.pos == nil {
		return nil
	}
	return PiecesOf(g.pos.Board())
}

// Apply decodes a SAN move against the live position and plays it.
func (g *Game) Apply(san string) (Applied, error) {
	if g.pos == nil {
		return Applied{}, ErrNoPosition
	}
	m, err := chess.AlgebraicNotation{}.Decode(g.pos, san)
	if err != nil {
		return Applied{}, fmt.Errorf("%w: %s: %v", ErrIllegalMove, san, err)
	}

	mover := g.pos.Board().Piece(m.S1())
	applied := Applied{
		Mover:    fromPieceType(mover.Type()),
		Captured: m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant),
	}
	g.pos = g.pos.Update(m)
	return applied, nil
}

// PiecesOf converts a notnil board into placed pieces, rank 8 first.
func PiecesOf(b *chess.Board) []board.PlacedPiece {
	var pieces []board.PlacedPiece
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := chess.Square(rank*8 + file)
			p := b.Piece(sq)
			if p == chess.NoPiece {
				continue
			}
			pieces = append(pieces, board.PlacedPiece{
				Type:   fromPieceType(p.Type()),
				Color:  fromColor(p.Color()),
				Square: board.NewSquare(file, rank),
			})
		}
	}
	return pieces
}

func fromColor(c chess.Color) board.Color {
	switch c {
	case chess.White:
		return board.White
	case chess.Black:
		return board.Black
	}
	return board.NoColor
}

func fromPieceType(pt chess.PieceType) board.PieceType {
	switch pt {
	case chess.King:
		return board.King
	case chess.Queen:
		return board.Queen
	case chess.Rook:
		return board.Rook
	case chess.Knight:
		return board.Knight
	case chess.Bishop:
		return board.Bishop
	case chess.Pawn:
		return board.Pawn
	}
	return board.NoPieceType
}
