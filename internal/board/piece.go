package board

import "fmt"

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Char returns the single-letter color code used in fragment files.
func (c Color) Char() byte {
	switch c {
	case White:
		return 'w'
	case Black:
		return 'b'
	default:
		return '-'
	}
}

// ParseColor parses a fragment color code ("w" or "b").
func ParseColor(s string) (Color, error) {
	switch s {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("invalid color: %q", s)
}

// PieceType represents the type of a chess piece.
// The order is fixed: it addresses rows of the action tables.
type PieceType uint8

const (
	King PieceType = iota
	Queen
	Rook
	Knight
	Bishop
	Pawn
	NoPieceType PieceType = 6
)

// NumPieceTypes is the number of real piece types.
const NumPieceTypes = int(NoPieceType)

// PieceTypes lists the piece types in table order.
var PieceTypes = [NumPieceTypes]PieceType{King, Queen, Rook, Knight, Bishop, Pawn}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'k', 'q', 'r', 'n', 'b', 'p', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// Label returns the uppercase letter used to annotate table rows.
func (pt PieceType) Label() string {
	if pt >= NoPieceType {
		return "?"
	}
	return string(pt.Char() - 'a' + 'A')
}

// ParsePieceType parses a lowercase piece letter ("k", "q", ...).
func ParsePieceType(s string) (PieceType, error) {
	if len(s) == 1 {
		for _, pt := range PieceTypes {
			if pt.Char() == s[0] {
				return pt, nil
			}
		}
	}
	return NoPieceType, fmt.Errorf("invalid piece type: %q", s)
}

// PieceValue is the material value of each piece type in pawns.
// The king is worth nothing since it can never be traded.
var PieceValue = [7]int{0, 9, 5, 3, 3, 1, 0}

// Value returns the material value of the piece type.
func (pt PieceType) Value() int {
	if pt > NoPieceType {
		return 0
	}
	return PieceValue[pt]
}

// PlacedPiece is a piece standing on a square.
type PlacedPiece struct {
	Type   PieceType
	Color  Color
	Square Square
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p PlacedPiece) Char() byte {
	c := p.Type.Char()
	if p.Color == White {
		c = c - 'a' + 'A'
	}
	return c
}

// String returns e.g. "Ke1" or "pe7".
func (p PlacedPiece) String() string {
	return string(p.Char()) + p.Square.String()
}

// Material sums piece values per color, indexed by Color.
func Material(pieces []PlacedPiece) [2]int {
	var sum [2]int
	for _, p := range pieces {
		if p.Color < NoColor {
			sum[p.Color] += p.Type.Value()
		}
	}
	return sum
}
