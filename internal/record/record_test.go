package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/movestats/internal/board"
)

const dingFragment = `{
  "event": "Candidates",
  "white": "Ding Liren",
  "black": "Someone",
  "result": "1-0",
  "isDingWin": true,
  "isDraw": false,
  "isDingBlack": false,
  "moves": ["Ke2", "Kd7", "Rxa8"],
  "statePieceCount": 5,
  "endPieceCount": 4,
  "boardState": [
    {"type": "n", "color": "b", "square": "a8"},
    {"type": "k", "color": "b", "square": "e8"},
    {"type": "r", "color": "w", "square": "a1"},
    {"type": "k", "color": "w", "square": "e1"},
    {"type": "p", "color": "w", "square": "h2"}
  ],
  "nextTurn": "w"
}`

func TestDecode(t *testing.T) {
	codec := NewCodec("isDingBlack", "isDingWin")

	rec, err := codec.Decode("1182570.json", []byte(dingFragment))
	require.NoError(t, err)

	assert.Equal(t, "1182570.json", rec.Name)
	assert.Equal(t, board.White, rec.TrackedColor)
	assert.Equal(t, board.White, rec.SideToMove)
	assert.True(t, rec.TrackedPlayerWon)
	assert.False(t, rec.IsDraw)
	assert.Equal(t, []string{"Ke2", "Kd7", "Rxa8"}, rec.Moves)
	require.Len(t, rec.BoardState, 5)
	assert.Equal(t, board.PlacedPiece{Type: board.Knight, Color: board.Black, Square: board.A8}, rec.BoardState[0])
	assert.Equal(t, "Candidates", rec.Meta.Event)
	assert.Equal(t, 5, rec.Meta.StatePieceCount)
	assert.Equal(t, 4, rec.Meta.EndPieceCount)
}

func TestDecodeDefaultsFlagNames(t *testing.T) {
	codec := NewCodec("", "")
	assert.Equal(t, DefaultBlackFlag, codec.BlackFlag)
	assert.Equal(t, DefaultWinFlag, codec.WinFlag)

	_, err := codec.Decode("ding", []byte(dingFragment))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeMalformed(t *testing.T) {
	codec := NewCodec("isBlack", "isWin")
	base := `"isBlack": true, "isWin": false, "isDraw": false, "moves": [], "nextTurn": "b"`

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"isBlack": tru`},
		{"missing board", `{` + base + `}`},
		{"null board", `{` + base + `, "boardState": null}`},
		{"bad piece", `{` + base + `, "boardState": [{"type": "x", "color": "w", "square": "a1"}]}`},
		{"bad color", `{` + base + `, "boardState": [{"type": "k", "color": "white", "square": "a1"}]}`},
		{"bad square", `{` + base + `, "boardState": [{"type": "k", "color": "w", "square": "i9"}]}`},
		{"bad turn", `{"isBlack": true, "isWin": false, "isDraw": false, "moves": [], "nextTurn": "x", "boardState": []}`},
		{"missing win flag", `{"isBlack": true, "isDraw": false, "moves": [], "nextTurn": "b", "boardState": []}`},
		{"moves not a list", `{"isBlack": true, "isWin": false, "isDraw": false, "moves": "e4", "nextTurn": "b", "boardState": []}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.name, []byte(tc.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tc.name)
		})
	}
}

func TestDecodeEmptyMoves(t *testing.T) {
	codec := NewCodec("isBlack", "isWin")
	rec, err := codec.Decode("empty", []byte(`{"isBlack": true, "isWin": false, "isDraw": true, "moves": [], "nextTurn": "b", "boardState": []}`))
	require.NoError(t, err)
	assert.Equal(t, board.Black, rec.TrackedColor)
	assert.Empty(t, rec.Moves)
	assert.True(t, rec.IsDraw)
}

func TestEncodeDecode(t *testing.T) {
	codec := NewCodec("isCarlsenBlack", "isCarlsenWin")
	rec := &GameRecord{
		Name:         "g1",
		TrackedColor: board.Black,
		BoardState: []board.PlacedPiece{
			{Type: board.King, Color: board.Black, Square: board.G8},
			{Type: board.King, Color: board.White, Square: board.G1},
		},
		SideToMove:       board.Black,
		Moves:            []string{"Kh7"},
		IsDraw:           true,
		TrackedPlayerWon: false,
		Meta:             Meta{White: "X", Black: "Magnus Carlsen", StatePieceCount: 5},
	}

	data, err := codec.Encode(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"isCarlsenBlack": true`)
	assert.Contains(t, string(data), `"nextTurn": "b"`)

	back, err := codec.Decode("g1", data)
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}
