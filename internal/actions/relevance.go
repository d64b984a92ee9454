package actions

import "github.com/hailam/movestats/internal/board"

// IsTrackedTurn reports whether the ply about to be played belongs to the
// tracked player. sideToMove must be read before the move is applied.
func IsTrackedTurn(sideToMove, tracked board.Color) bool {
	return sideToMove == tracked
}
