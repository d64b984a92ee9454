package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/movestats/internal/actions"
	"github.com/hailam/movestats/internal/board"
	"github.com/hailam/movestats/internal/corpus"
	"github.com/hailam/movestats/internal/record"
	"github.com/hailam/movestats/internal/rules"
)

type sliceSource []corpus.Fragment

func (s sliceSource) Each(ctx context.Context, fn func(corpus.Fragment) error) error {
	for _, f := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

var codec = record.NewCodec("isDingBlack", "isDingWin")

func encode(t *testing.T, name, placement string, side, tracked board.Color, won, draw bool, moves ...string) corpus.Fragment {
	t.Helper()
	pieces, err := board.ParsePlacement(placement)
	require.NoError(t, err)
	data, err := codec.Encode(&record.GameRecord{
		TrackedColor:     tracked,
		BoardState:       pieces,
		SideToMove:       side,
		Moves:            moves,
		IsDraw:           draw,
		TrackedPlayerWon: won,
	})
	require.NoError(t, err)
	return corpus.Fragment{Name: name, Data: data}
}

func sampleCorpus(t *testing.T) sliceSource {
	return sliceSource{
		encode(t, "advance-win", "4k3/4p3/8/8/8/8/8/4K3", board.Black, board.Black, true, false, "e5", "Kd2", "Kf7"),
		encode(t, "opponent-capture", "n7/7k/8/8/8/8/8/R3K3", board.White, board.Black, false, false, "Rxa8", "Kg6"),
		encode(t, "neutral-draw", "4k3/4p3/8/8/8/8/4P3/4K3", board.White, board.White, false, true, "e4", "e5", "Kd2", "Kd7"),
		encode(t, "final-capture", "n7/7k/8/8/8/8/8/R3K3", board.White, board.White, false, false, "Rxa8"),
		encode(t, "empty", "4k3/8/8/8/8/8/8/4K3", board.White, board.White, false, true),
	}
}

func TestRunSequential(t *testing.T) {
	src := sampleCorpus(t)

	result, err := Run(context.Background(), src, Options{Codec: codec})
	require.NoError(t, err)

	assert.Equal(t, Summary{
		Records:          5,
		Wins:             1,
		Losses:           2,
		Draws:            2,
		Plies:            3 + 1 + 4 + 1,
		Classified:       2 + 0 + 2 + 1,
		StoppedOnCapture: 2,
	}, result.Summary)
	assert.Equal(t, result.Summary.Classified, result.Tensor.Total())

	assert.Equal(t, actions.Row{1, 0, 0, 0, 0}, result.Tensor.Row(actions.Winning, board.Pawn))
	assert.Equal(t, actions.Row{0, 0, 1, 0, 0}, result.Tensor.Row(actions.Winning, board.King))
	assert.Equal(t, actions.Row{0, 0, 0, 1, 0}, result.Tensor.Row(actions.Winning, board.Rook))
	assert.Equal(t, actions.Row{1, 0, 0, 0, 0}, result.Tensor.Row(actions.Neutral, board.Pawn))
	assert.Equal(t, actions.Row{1, 0, 0, 0, 0}, result.Tensor.Row(actions.Neutral, board.King))

	table := result.Table()
	assert.Equal(t, actions.Row{96, 1, 1, 1, 1}, table.Row(actions.Winning, board.Pawn))
	assert.Equal(t, actions.Row{1, 1, 1, 1, 1}, table.Row(actions.Losing, board.Queen))
	assert.InDelta(t, 20.0, result.Summary.WinRate(), 1e-9)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	base := sampleCorpus(t)
	var src sliceSource
	for i := 0; i < 25; i++ {
		for _, f := range base {
			src = append(src, corpus.Fragment{Name: fmt.Sprintf("%s-%d", f.Name, i), Data: f.Data})
		}
	}

	seq, err := Run(context.Background(), src, Options{Codec: codec})
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			par, err := Run(context.Background(), src, Options{Codec: codec, Workers: workers})
			require.NoError(t, err)
			assert.Equal(t, seq.Tensor, par.Tensor)
			assert.Equal(t, seq.Summary, par.Summary)
		})
	}
}

func TestRunMalformedPolicy(t *testing.T) {
	src := append(sampleCorpus(t), corpus.Fragment{Name: "broken.json", Data: []byte(`{"isDingBlack": true}`)})

	for _, workers := range []int{1, 4} {
		_, err := Run(context.Background(), src, Options{Codec: codec, Workers: workers})
		assert.ErrorIs(t, err, record.ErrMalformed)
		assert.ErrorContains(t, err, "broken.json")

		result, err := Run(context.Background(), src, Options{Codec: codec, Workers: workers, SkipMalformed: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.Skipped)
		assert.Equal(t, 5, result.Summary.Records)
	}
}

func TestRunIllegalMoveAlwaysFatal(t *testing.T) {
	src := append(sampleCorpus(t),
		encode(t, "illegal", "4k3/4p3/8/8/8/8/8/4K3", board.Black, board.Black, true, false, "e5", "Qh5"))

	for _, workers := range []int{1, 4} {
		_, err := Run(context.Background(), src, Options{Codec: codec, Workers: workers, SkipMalformed: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, rules.ErrIllegalMove)

		var replayErr *actions.ReplayError
		require.ErrorAs(t, err, &replayErr)
		assert.Equal(t, "illegal", replayErr.Record)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, sampleCorpus(t), Options{Codec: codec})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Run(ctx, sampleCorpus(t), Options{Codec: codec, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCustomProvider(t *testing.T) {
	calls := 0
	opts := Options{
		Codec: codec,
		NewProvider: func() rules.Provider {
			calls++
			return rules.NewGame()
		},
		Workers: 3,
	}

	_, err := Run(context.Background(), sampleCorpus(t), opts)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunEmptyCorpus(t *testing.T) {
	result, err := Run(context.Background(), sliceSource{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, Summary{}, result.Summary)
	assert.Zero(t, result.Summary.WinRate())

	table := result.Table()
	for _, s := range actions.MaterialStates {
		for _, pt := range board.PieceTypes {
			assert.Equal(t, actions.Row{1, 1, 1, 1, 1}, table.Row(s, pt))
		}
	}
}
