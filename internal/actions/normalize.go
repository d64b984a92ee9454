package actions

import "github.com/hailam/movestats/internal/board"

// WeightScale is the spread given to a populated row on top of the floor of 1.
const WeightScale = 95

// Table holds the normalized weights, same shape as a Tensor.
type Table struct {
	rows [NumMaterialStates][board.NumPieceTypes]Row
}

// Row returns the weights for one (state, piece) pair.
func (t *Table) Row(state MaterialState, piece board.PieceType) Row {
	return t.rows[state][piece]
}

// Normalize rescales every row of the tensor into integer weights.
// Empty rows become all ones. Otherwise each cell is
// 1 + round(count*95/sum), so cells range over 1..96.
func Normalize(t *Tensor) *Table {
	out := &Table{}
	for s := range t.rows {
		for p := range t.rows[s] {
			out.rows[s][p] = NormalizeRow(t.rows[s][p])
		}
	}
	return out
}

// NormalizeRow rescales one count vector.
func NormalizeRow(counts Row) Row {
	var out Row
	sum := counts.Sum()
	if sum == 0 {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	for i, c := range counts {
		// round half up in integers: floor((2*c*95 + sum) / (2*sum))
		out[i] = 1 + (2*c*WeightScale+sum)/(2*sum)
	}
	return out
}
