package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGomokuFiveInRow(t *testing.T) {
	board, err := NewBoard(15)
	require.NoError(t, err)
	r := New(Gomoku, board)

	for i, m := range []Move{{Row: 7, Col: 7}, {Row: 7, Col: 8}, {Row: 7, Col: 9}, {Row: 7, Col: 10}} {
		r.Apply(m, Black)
		require.Equal(t, InProgress, r.Result(m), "after %d stones", i+1)
	}
	last := Move{Row: 7, Col: 11}
	r.Apply(last, Black)
	require.Equal(t, BlackWin, r.Result(last))
}

func TestGomokuWinAxes(t *testing.T) {
	cases := []struct {
		name   string
		dr, dc int
	}{
		{"vertical", 1, 0},
		{"diagonal", 1, 1},
		{"antidiagonal", 1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			board, err := NewBoard(15)
			require.NoError(t, err)
			r := New(Gomoku, board)
			var last Move
			for i := 0; i < 5; i++ {
				last = Move{Row: 7 + i*tc.dr, Col: 7 + i*tc.dc}
				r.Apply(last, White)
			}
			require.Equal(t, WhiteWin, r.Result(last))
		})
	}
}

func TestGomokuMidRunDetection(t *testing.T) {
	board, err := NewBoard(15)
	require.NoError(t, err)
	r := New(Gomoku, board)
	for _, c := range []int{3, 4, 6, 7} {
		r.Apply(Move{Row: 7, Col: c}, Black)
	}
	// the fifth stone lands inside the run, not at its end
	last := Move{Row: 7, Col: 5}
	r.Apply(last, Black)
	require.Equal(t, BlackWin, r.Result(last))
}

func TestGomokuOverlineWins(t *testing.T) {
	board, err := NewBoard(15)
	require.NoError(t, err)
	r := New(Gomoku, board)
	for _, c := range []int{2, 3, 4, 6, 7} {
		r.Apply(Move{Row: 7, Col: c}, Black)
	}
	last := Move{Row: 7, Col: 5}
	r.Apply(last, Black)
	require.Equal(t, BlackWin, r.Result(last))
}

func TestGomokuBrokenRunDoesNotWin(t *testing.T) {
	board, err := NewBoard(15)
	require.NoError(t, err)
	r := New(Gomoku, board)
	for _, c := range []int{3, 4, 5, 6} {
		r.Apply(Move{Row: 7, Col: c}, Black)
	}
	r.Apply(Move{Row: 7, Col: 7}, White)
	last := Move{Row: 7, Col: 8}
	r.Apply(last, Black)
	require.Equal(t, InProgress, r.Result(last))
}

func TestGomokuFullBoardDraw(t *testing.T) {
	board, err := NewBoard(8)
	require.NoError(t, err)
	r := New(Gomoku, board)
	// brick pattern: two-wide color bands shifted per row, no run reaches five
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if row == 0 && col == 0 {
				continue
			}
			color := Black
			if (row+col/2)%2 == 0 {
				color = White
			}
			board.Set(row, col, color)
		}
	}
	last := Move{Row: 0, Col: 0}
	r.Apply(last, Black)
	require.Equal(t, Draw, r.Result(last))
}

func TestGomokuLegality(t *testing.T) {
	board, err := NewBoard(15)
	require.NoError(t, err)
	r := New(Gomoku, board)
	r.Apply(Move{Row: 7, Col: 7}, Black)

	require.False(t, r.IsLegal(Move{Row: 7, Col: 7}, White), "occupied")
	require.False(t, r.IsLegal(Move{Row: -1, Col: 3}, White), "out of bounds")
	require.False(t, r.IsLegal(Move{Row: 15, Col: 0}, White), "out of bounds")
	require.True(t, r.IsLegal(Move{Row: 0, Col: 0}, White))
	require.False(t, r.SupportsPass())
	require.Len(t, r.LegalMoves(White), 15*15-1)
	require.Equal(t, InProgress, r.Result(Pass))
}
