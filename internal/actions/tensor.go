package actions

import (
	"github.com/samber/lo"

	"github.com/hailam/movestats/internal/board"
)

// Category is what a classified ply did.
type Category uint8

const (
	Advance Category = iota
	Capture
	EndWin
	EndLose
	EndDraw
	NumCategories = 5
)

func (c Category) String() string {
	switch c {
	case Advance:
		return "advance"
	case Capture:
		return "capture"
	case EndWin:
		return "end_win"
	case EndLose:
		return "end_lose"
	case EndDraw:
		return "end_draw"
	default:
		return "unknown"
	}
}

// Row is one count (or weight) vector indexed by Category.
type Row [NumCategories]int

// Sum returns the total over all categories.
func (r Row) Sum() int {
	return lo.Sum(r[:])
}

// Tensor accumulates classified plies by material state and moving piece.
// The zero value is an empty tensor. It is a plain value so each worker of
// a parallel run can own one and merge it with Add afterwards.
type Tensor struct {
	rows [NumMaterialStates][board.NumPieceTypes]Row
}

// NewTensor returns an empty tensor.
func NewTensor() *Tensor {
	return &Tensor{}
}

// Increment counts one ply.
func (t *Tensor) Increment(state MaterialState, piece board.PieceType, cat Category) {
	t.rows[state][piece][cat]++
}

// Row returns the counts for one (state, piece) pair.
func (t *Tensor) Row(state MaterialState, piece board.PieceType) Row {
	return t.rows[state][piece]
}

// Add merges other into t cell by cell.
func (t *Tensor) Add(other *Tensor) {
	for s := range t.rows {
		for p := range t.rows[s] {
			for c := range t.rows[s][p] {
				t.rows[s][p][c] += other.rows[s][p][c]
			}
		}
	}
}

// Total returns the number of classified plies.
func (t *Tensor) Total() int {
	total := 0
	for s := range t.rows {
		for p := range t.rows[s] {
			total += t.rows[s][p].Sum()
		}
	}
	return total
}
