package actions

import (
	"errors"
	"fmt"

	"github.com/hailam/movestats/internal/board"
	"github.com/hailam/movestats/internal/record"
	"github.com/hailam/movestats/internal/rules"
)

var errNoMover = errors.New("rules provider reported no moving piece")

// ReplayStats describes what happened to one record.
type ReplayStats struct {
	Plies            int
	Classified       int
	StoppedOnCapture bool
}

// ReplayError reports a move the rules provider refused.
type ReplayError struct {
	Record string
	Ply    int
	Move   string
	Err    error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("%s: ply %d (%s): %v", e.Record, e.Ply, e.Move, e.Err)
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

// Replay seeds p with the record's position, plays its moves and counts every
// ply made by the tracked player into t. Replay stops right after the first
// capture by either side; the remaining moves are never played.
func Replay(p rules.Provider, rec *record.GameRecord, t *Tensor) (ReplayStats, error) {
	var stats ReplayStats

	if err := p.Setup(rec.BoardState, rec.SideToMove); err != nil {
		return stats, fmt.Errorf("%w: %s: %v", record.ErrMalformed, rec.Name, err)
	}

	last := len(rec.Moves) - 1
	for i, san := range rec.Moves {
		relevant := IsTrackedTurn(p.SideToMove(), rec.TrackedColor)
		state := EvaluateMaterial(p.Pieces(), rec.TrackedColor)

		applied, err := p.Apply(san)
		if err != nil {
			return stats, &ReplayError{Record: rec.Name, Ply: i, Move: san, Err: err}
		}
		if applied.Mover >= board.NoPieceType {
			return stats, &ReplayError{Record: rec.Name, Ply: i, Move: san, Err: errNoMover}
		}
		stats.Plies++

		if relevant {
			t.Increment(state, applied.Mover, classify(rec, i == last, applied.Captured))
			stats.Classified++
		}

		if applied.Captured {
			stats.StoppedOnCapture = true
			break
		}
	}

	return stats, nil
}

// classify picks the category of a tracked ply. On the final ply the game
// outcome wins over whatever the move did.
func classify(rec *record.GameRecord, final, captured bool) Category {
	switch {
	case final && rec.IsDraw:
		return EndDraw
	case final && rec.TrackedPlayerWon:
		return EndWin
	case final:
		return EndLose
	case captured:
		return Capture
	default:
		return Advance
	}
}
