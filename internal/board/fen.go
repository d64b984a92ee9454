package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ToFEN returns the FEN for a position holding exactly the given pieces.
// Castling rights and the en passant square are always empty since a
// fragment does not record them.
func ToFEN(pieces []PlacedPiece, sideToMove Color) (string, error) {
	var grid [64]*PlacedPiece
	for i := range pieces {
		p := &pieces[i]
		if !p.Square.IsValid() {
			return "", fmt.Errorf("invalid square for %s", p.Type)
		}
		if p.Type >= NoPieceType || p.Color >= NoColor {
			return "", fmt.Errorf("invalid piece on %s", p.Square)
		}
		if grid[p.Square] != nil {
			return "", fmt.Errorf("two pieces on %s", p.Square)
		}
		grid[p.Square] = p
	}
	if sideToMove >= NoColor {
		return "", fmt.Errorf("invalid side to move: %s", sideToMove)
	}

	var sb strings.Builder

	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := grid[NewSquare(file, rank)]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteByte(sideToMove.Char())
	sb.WriteString(" - - 0 1")

	return sb.String(), nil
}

// ParsePlacement parses the piece placement field of a FEN string.
// Pieces are returned rank 8 first, files a to h, the same order a
// board scan produces.
func ParsePlacement(placement string) ([]PlacedPiece, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	var pieces []PlacedPiece
	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return nil, fmt.Errorf("too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			color := Black
			lower := c
			if c >= 'A' && c <= 'Z' {
				color = White
				lower = c - 'A' + 'a'
			}
			pt, err := ParsePieceType(string(lower))
			if err != nil {
				return nil, fmt.Errorf("invalid piece character: %c", c)
			}
			pieces = append(pieces, PlacedPiece{Type: pt, Color: color, Square: NewSquare(file, rank)})
			file++
		}

		if file != 8 {
			return nil, fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return pieces, nil
}
