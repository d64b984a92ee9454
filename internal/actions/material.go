// Package actions classifies the tracked player's moves in replayed
// fragments and turns the resulting counts into move weights.
package actions

import "github.com/hailam/movestats/internal/board"

// MaterialState is the material balance from the tracked player's side.
type MaterialState uint8

const (
	Winning MaterialState = iota
	Losing
	Neutral
	NumMaterialStates = 3
)

// MaterialStates lists the states in table order.
var MaterialStates = [NumMaterialStates]MaterialState{Winning, Losing, Neutral}

func (s MaterialState) String() string {
	switch s {
	case Winning:
		return "winning"
	case Losing:
		return "losing"
	case Neutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// EvaluateMaterial scores the pieces with the standard values and compares
// the tracked color's sum against the opponent's.
func EvaluateMaterial(pieces []board.PlacedPiece, tracked board.Color) MaterialState {
	if tracked >= board.NoColor {
		return Neutral
	}
	sum := board.Material(pieces)
	own, their := sum[tracked], sum[tracked.Other()]
	switch {
	case own == their:
		return Neutral
	case own > their:
		return Winning
	default:
		return Losing
	}
}
