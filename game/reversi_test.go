package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReversiSetup(t *testing.T) {
	board, err := NewBoard(8)
	require.NoError(t, err)
	r := New(Reversi, board)
	r.Setup()

	require.Equal(t, White, board.At(3, 3))
	require.Equal(t, White, board.At(4, 4))
	require.Equal(t, Black, board.At(3, 4))
	require.Equal(t, Black, board.At(4, 3))
	require.Equal(t, 2, board.Count(Black))
	require.Equal(t, 2, board.Count(White))
}

func TestReversiOpeningMoves(t *testing.T) {
	board, err := NewBoard(8)
	require.NoError(t, err)
	r := New(Reversi, board)
	r.Setup()

	require.ElementsMatch(t,
		[]Move{{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4}},
		r.LegalMoves(Black))
	require.True(t, r.HasLegalMove(Black))
}

func TestReversiFlipsBracketedRunsOnly(t *testing.T) {
	board, err := NewBoard(8)
	require.NoError(t, err)
	r := New(Reversi, board)
	// east and south runs are bracketed, the north run is open-ended
	board.Set(3, 1, White)
	board.Set(3, 2, White)
	board.Set(3, 3, Black)
	board.Set(3, 4, White)
	board.Set(4, 0, White)
	board.Set(5, 0, Black)
	board.Set(2, 0, White)
	board.Set(1, 0, White)

	m := Move{Row: 3, Col: 0}
	require.True(t, r.IsLegal(m, Black))
	r.Apply(m, Black)

	require.Equal(t, Black, board.At(3, 1))
	require.Equal(t, Black, board.At(3, 2))
	require.Equal(t, Black, board.At(4, 0))
	require.Equal(t, White, board.At(3, 4), "stone beyond the bracket untouched")
	require.Equal(t, White, board.At(2, 0), "unbracketed run keeps its color")
	require.Equal(t, White, board.At(1, 0))
}

func TestReversiIllegalPlacements(t *testing.T) {
	board, err := NewBoard(8)
	require.NoError(t, err)
	r := New(Reversi, board)
	r.Setup()

	require.False(t, r.IsLegal(Move{Row: 0, Col: 0}, Black), "far from any stone")
	require.False(t, r.IsLegal(Move{Row: 2, Col: 2}, Black), "adjacent but no bracket")
	require.False(t, r.IsLegal(Move{Row: 3, Col: 3}, Black), "occupied")
	require.False(t, r.IsLegal(Move{Row: -1, Col: 0}, Black), "out of bounds")
}

func TestReversiTerminal(t *testing.T) {
	t.Run("full board compares counts", func(t *testing.T) {
		board, err := NewBoard(8)
		require.NoError(t, err)
		r := New(Reversi, board)
		for row := 0; row < 8; row++ {
			for col := 0; col < 8; col++ {
				color := Black
				if row >= 5 {
					color = White
				}
				board.Set(row, col, color)
			}
		}
		require.Equal(t, BlackWin, r.Result(Move{Row: 0, Col: 0}))
	})

	t.Run("extinction ends the game", func(t *testing.T) {
		board, err := NewBoard(8)
		require.NoError(t, err)
		r := New(Reversi, board)
		board.Set(0, 0, White)
		board.Set(0, 1, White)
		require.Equal(t, WhiteWin, r.Result(Move{Row: 0, Col: 1}))
	})

	t.Run("mutual stall compares counts", func(t *testing.T) {
		board, err := NewBoard(8)
		require.NoError(t, err)
		r := New(Reversi, board)
		board.Set(0, 0, White)
		board.Set(7, 7, Black)
		require.False(t, r.HasLegalMove(Black))
		require.False(t, r.HasLegalMove(White))
		require.Equal(t, Draw, r.Result(Move{Row: 7, Col: 7}))
	})

	t.Run("live position continues", func(t *testing.T) {
		board, err := NewBoard(8)
		require.NoError(t, err)
		r := New(Reversi, board)
		r.Setup()
		m := Move{Row: 2, Col: 3}
		r.Apply(m, Black)
		require.Equal(t, InProgress, r.Result(m))
	})

	t.Run("pass reports nothing", func(t *testing.T) {
		board, err := NewBoard(8)
		require.NoError(t, err)
		r := New(Reversi, board)
		r.Setup()
		require.Equal(t, InProgress, r.Result(Pass))
	})
}

func TestReversiLargerBoardSetup(t *testing.T) {
	board, err := NewBoard(10)
	require.NoError(t, err)
	r := New(Reversi, board)
	r.Setup()

	require.Equal(t, White, board.At(4, 4))
	require.Equal(t, White, board.At(5, 5))
	require.Equal(t, Black, board.At(4, 5))
	require.Equal(t, Black, board.At(5, 4))
}
