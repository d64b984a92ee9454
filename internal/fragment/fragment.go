// Package fragment cuts endgame fragments out of full PGN games: the game
// is replayed until few enough pieces remain, and the rest of the move list
// becomes a fragment for the tracked player.
package fragment

import (
	"errors"
	"strings"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/movestats/internal/board"
	"github.com/hailam/movestats/internal/record"
	"github.com/hailam/movestats/internal/rules"
)

// DefaultPieceCount is the piece count at which a fragment starts.
const DefaultPieceCount = 5

// Reasons a game yields no fragment.
var (
	ErrNotTracked      = errors.New("tracked player is neither white nor black")
	ErrNeverReached    = errors.New("piece count threshold never reached")
	ErrNoMaterialTrade = errors.New("no piece left the board after the threshold")
)

// PGN results
const (
	ResultWhiteWin = "1-0"
	ResultBlackWin = "0-1"
	ResultDraw     = "1/2-1/2"
)

// Builder turns games into fragments for one tracked player.
type Builder struct {
	// Name replaces the matched alias in the fragment's white/black field.
	Name       string
	PieceCount int

	aliases map[string]struct{}
}

// NewBuilder returns a Builder matching player names case-insensitively
// against aliases. The first alias is used as the display name.
func NewBuilder(aliases []string, pieceCount int) *Builder {
	if pieceCount <= 0 {
		pieceCount = DefaultPieceCount
	}
	cleaned := lo.Compact(lo.Map(aliases, func(a string, _ int) string {
		return strings.TrimSpace(a)
	}))
	b := &Builder{
		PieceCount: pieceCount,
		aliases: lo.SliceToMap(cleaned, func(a string) (string, struct{}) {
			return strings.ToLower(a), struct{}{}
		}),
	}
	if len(cleaned) > 0 {
		b.Name = cleaned[0]
	}
	return b
}

// Tracks reports whether a PGN player name belongs to the tracked player.
func (b *Builder) Tracks(player string) bool {
	_, ok := b.aliases[strings.ToLower(strings.TrimSpace(player))]
	return ok
}

// Build cuts the fragment out of one game.
func (b *Builder) Build(g *chess.Game) (*record.GameRecord, error) {
	white, black := tag(g, "White"), tag(g, "Black")
	isWhite, isBlack := b.Tracks(white), b.Tracks(black)
	if !isWhite && !isBlack {
		return nil, ErrNotTracked
	}

	result := tag(g, "Result")
	var won, draw bool
	switch result {
	case ResultBlackWin:
		won = isBlack
	case ResultWhiteWin:
		won = isWhite
	case ResultDraw:
		draw = true
	default:
		log.Warn().Str("result", result).Str("event", tag(g, "Event")).Msg("unknown result")
	}

	moves := g.Moves()
	positions := g.Positions()

	// Play until the threshold; the fragment starts after that move.
	start := len(moves)
	for i := range moves {
		if countPieces(positions[i+1]) <= b.PieceCount {
			start = i + 1
			break
		}
	}
	if start >= len(moves) {
		return nil, ErrNeverReached
	}

	endCount := countPieces(positions[len(positions)-1])
	if endCount == b.PieceCount {
		return nil, ErrNoMaterialTrade
	}

	sans := make([]string, 0, len(moves)-start)
	for i := start; i < len(moves); i++ {
		sans = append(sans, chess.AlgebraicNotation{}.Encode(positions[i], moves[i]))
	}

	startPos := positions[start]
	rec := &record.GameRecord{
		TrackedColor:     board.White,
		BoardState:       rules.PiecesOf(startPos.Board()),
		SideToMove:       board.White,
		Moves:            sans,
		IsDraw:           draw,
		TrackedPlayerWon: won,
		Meta: record.Meta{
			Event:           tag(g, "Event"),
			Site:            tag(g, "Site"),
			Date:            tag(g, "Date"),
			Round:           tag(g, "Round"),
			Result:          result,
			White:           white,
			Black:           black,
			StatePieceCount: b.PieceCount,
			EndPieceCount:   endCount,
		},
	}
	if isBlack {
		rec.TrackedColor = board.Black
		rec.Meta.Black = b.Name
	} else {
		rec.Meta.White = b.Name
	}
	if startPos.Turn() == chess.Black {
		rec.SideToMove = board.Black
	}

	return rec, nil
}

func tag(g *chess.Game, key string) string {
	if tp := g.GetTagPair(key); tp != nil {
		return tp.Value
	}
	return ""
}

func countPieces(pos *chess.Position) int {
	return len(pos.Board().SquareMap())
}
