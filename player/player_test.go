package player

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sente/game"
	"sente/searcher"
)

func fillBoard(board *game.Board, holes ...game.Move) {
	for row := 0; row < board.Size(); row++ {
		for col := 0; col < board.Size(); col++ {
			skip := false
			for _, h := range holes {
				if h.Row == row && h.Col == col {
					skip = true
					break
				}
			}
			if skip {
				continue
			}
			color := game.Black
			if (row+col)%2 == 0 {
				color = game.White
			}
			board.Set(row, col, color)
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"human":  Human,
		"random": Random,
		"greedy": Greedy,
		"mcts":   Search,
		"search": Search,
	}
	for name, want := range cases {
		got, err := ParseKind(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseKind("alphabeta")
	require.Error(t, err)
}

func TestNewBuildsRequestedKinds(t *testing.T) {
	cfg := Config{Seed: 1, Episodes: 10}
	for _, kind := range []Kind{Human, Random, Greedy, Search} {
		agent := New(kind, "seat", game.Black, cfg)
		require.Equal(t, kind, agent.Kind())
		require.Equal(t, "seat", agent.Name())
		require.Equal(t, game.Black, agent.Color())
	}
}

func TestRandomAgentPlaysLegalMoves(t *testing.T) {
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	rules := game.New(game.Reversi, board)
	rules.Setup()

	a := NewRandom("rand", game.Black, 42)
	for i := 0; i < 10; i++ {
		m := a.ChooseMove(board, rules)
		require.True(t, rules.IsLegal(m, game.Black), "move %v", m)
	}
}

func TestRandomAgentSeedReproducible(t *testing.T) {
	board, err := game.NewBoard(15)
	require.NoError(t, err)
	rules := game.New(game.Gomoku, board)

	first := NewRandom("a", game.Black, 7).ChooseMove(board, rules)
	second := NewRandom("b", game.Black, 7).ChooseMove(board, rules)
	require.Equal(t, first, second)
}

func TestRandomAgentPassWhenStuck(t *testing.T) {
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	fillBoard(board)
	rules := game.New(game.Gomoku, board)

	a := NewRandom("rand", game.White, 1)
	require.Equal(t, game.Pass, a.ChooseMove(board, rules))
}

func TestGreedyAgentPrefersCorners(t *testing.T) {
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	rules := game.New(game.Gomoku, board)

	corners := []game.Move{{Row: 0, Col: 0}, {Row: 0, Col: 7}, {Row: 7, Col: 0}, {Row: 7, Col: 7}}
	for _, seed := range []uint64{1, 2, 3, 4, 5} {
		m := NewGreedy("g", game.Black, seed).ChooseMove(board, rules)
		require.Contains(t, corners, m, "seed %d", seed)
	}
}

func TestGreedyAgentOffTableCellsScoreLow(t *testing.T) {
	// on 15x15 most cells lie outside the weight table and score one
	board, err := game.NewBoard(15)
	require.NoError(t, err)
	rules := game.New(game.Gomoku, board)

	corners := []game.Move{{Row: 0, Col: 0}, {Row: 0, Col: 7}, {Row: 7, Col: 0}, {Row: 7, Col: 7}}
	m := NewGreedy("g", game.Black, 9).ChooseMove(board, rules)
	require.Contains(t, corners, m)
}

func TestGreedyAgentPicksOnlyLegalMoves(t *testing.T) {
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	rules := game.New(game.Reversi, board)
	rules.Setup()

	m := NewGreedy("g", game.Black, 17).ChooseMove(board, rules)
	require.Contains(t, rules.LegalMoves(game.Black), m)
}

func TestGreedyAgentPassWhenStuck(t *testing.T) {
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	fillBoard(board)
	rules := game.New(game.Gomoku, board)

	require.Equal(t, game.Pass, NewGreedy("g", game.Black, 1).ChooseMove(board, rules))
}

func TestHumanMailbox(t *testing.T) {
	h := NewHuman("me", game.White)
	_, ok := h.TakePending()
	require.False(t, ok)

	h.Submit(game.Move{Row: 3, Col: 4})
	h.Submit(game.Move{Row: 5, Col: 6}) // replaces the unplayed move
	m, ok := h.TakePending()
	require.True(t, ok)
	require.Equal(t, game.Move{Row: 5, Col: 6}, m)

	_, ok = h.TakePending()
	require.False(t, ok)
}

func TestHumanChooseMoveDrainsMailbox(t *testing.T) {
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	rules := game.New(game.Gomoku, board)

	h := NewHuman("me", game.Black)
	require.Equal(t, game.Pass, h.ChooseMove(board, rules))

	h.Submit(game.Move{Row: 1, Col: 1})
	require.Equal(t, game.Move{Row: 1, Col: 1}, h.ChooseMove(board, rules))
}

func TestSearchAgentFindsOnlyMove(t *testing.T) {
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	fillBoard(board, game.Move{Row: 2, Col: 2})
	rules := game.New(game.Gomoku, board)

	a := NewSearch("bot", game.Black, searcher.WithEpisodes(30), searcher.WithSeed(3))
	require.Equal(t, game.Move{Row: 2, Col: 2}, a.ChooseMove(board, rules))
}
