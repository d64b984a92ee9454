// Package board holds the chess vocabulary shared by the fragment loader,
// the rules adapter and the action tables.
package board

import "fmt"

// Square indexes the board rank by rank from a1 (0) to h8 (63), the same
// layout the rules library uses, so conversions are plain casts.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// File is 0 for the a-file through 7 for the h-file.
func (sq Square) File() int { return int(sq) % 8 }

// Rank is 0 for the first rank through 7 for the eighth.
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) IsValid() bool { return sq < NoSquare }

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare reads a lower-case coordinate such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) == 2 {
		file, rank := s[0], s[1]
		if file >= 'a' && file <= 'h' && rank >= '1' && rank <= '8' {
			return NewSquare(int(file-'a'), int(rank-'1')), nil
		}
	}
	return NoSquare, fmt.Errorf("bad square %q", s)
}
