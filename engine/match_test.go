package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sente/game"
	"sente/player"
	"sente/store"
)

func newHumanMatch(t *testing.T, variant game.Variant, size int) (*Match, *player.HumanAgent, *player.HumanAgent) {
	t.Helper()
	black := player.NewHuman("black", game.Black)
	white := player.NewHuman("white", game.White)
	m, err := NewMatch(Settings{Variant: variant, Size: size}, black, white)
	require.NoError(t, err)
	return m, black, white
}

func TestMatchDefaultSizes(t *testing.T) {
	for variant, want := range map[game.Variant]int{game.Gomoku: 15, game.Go: 19, game.Reversi: 8} {
		m, _, _ := newHumanMatch(t, variant, 0)
		require.Equal(t, want, m.Board().Size(), variant.String())
	}
}

func TestMatchRejectsBadSettings(t *testing.T) {
	black := player.NewHuman("b", game.Black)
	white := player.NewHuman("w", game.White)
	_, err := NewMatch(Settings{Variant: game.Variant(42)}, black, white)
	require.Error(t, err)
	_, err = NewMatch(Settings{Variant: game.Gomoku, Size: 7}, black, white)
	require.Error(t, err)
}

func TestMatchGomokuWin(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Gomoku, 15)
	seq := []game.Move{
		{Row: 7, Col: 7}, {Row: 0, Col: 0},
		{Row: 7, Col: 8}, {Row: 0, Col: 1},
		{Row: 7, Col: 9}, {Row: 0, Col: 2},
		{Row: 7, Col: 10}, {Row: 0, Col: 3},
	}
	for _, mv := range seq {
		ok, reason := m.Play(mv)
		require.True(t, ok, reason)
	}
	require.Equal(t, game.InProgress, m.Status())

	ok, _ := m.Play(game.Move{Row: 7, Col: 11})
	require.True(t, ok)
	require.Equal(t, game.BlackWin, m.Status())
	require.Equal(t, 9, m.Moves())

	ok, reason := m.Play(game.Move{Row: 5, Col: 5})
	require.False(t, ok)
	require.Contains(t, reason, "over")
}

func TestMatchRejectsIllegalMoves(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Gomoku, 15)
	ok, _ := m.Play(game.Move{Row: 7, Col: 7})
	require.True(t, ok)

	ok, reason := m.Play(game.Move{Row: 7, Col: 7})
	require.False(t, ok)
	require.NotEmpty(t, reason)
	require.Equal(t, game.White, m.Mover(), "turn unchanged after rejection")
	require.Equal(t, 1, m.Moves())

	ok, _ = m.Play(game.Move{Row: -1, Col: 7})
	require.False(t, ok)
	require.NotEmpty(t, m.Message())
}

func TestMatchVoluntaryPassPolicy(t *testing.T) {
	gomoku, _, _ := newHumanMatch(t, game.Gomoku, 15)
	require.ErrorIs(t, gomoku.Pass(), ErrNoPass)

	reversi, _, _ := newHumanMatch(t, game.Reversi, 8)
	require.ErrorIs(t, reversi.Pass(), ErrNoPass)

	territory, _, _ := newHumanMatch(t, game.Go, 9)
	require.NoError(t, territory.Pass())
	require.Equal(t, game.White, territory.Mover())
}

func TestMatchDoublePassScores(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Go, 9)
	require.NoError(t, m.Pass())
	require.NoError(t, m.Pass())
	require.Equal(t, game.WhiteWin, m.Status(), "komi decides an empty board")

	black, white := m.Scores()
	require.Equal(t, 0.0, black)
	require.Equal(t, game.Komi, white)
}

func TestMatchPassCounterResets(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Go, 9)
	require.NoError(t, m.Pass())
	ok, _ := m.Play(game.Move{Row: 4, Col: 4})
	require.True(t, ok)
	require.NoError(t, m.Pass())
	require.Equal(t, game.InProgress, m.Status(), "non-consecutive passes keep playing")

	require.NoError(t, m.Pass())
	require.Equal(t, game.WhiteWin, m.Status(), "lone white stone owns the board")
}

func TestMatchUndo(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Gomoku, 15)
	require.ErrorIs(t, m.Undo(), ErrNothingToUndo)

	before := m.Board().Serialize()
	m.Play(game.Move{Row: 7, Col: 7})
	m.Play(game.Move{Row: 8, Col: 8})

	require.NoError(t, m.Undo())
	require.Equal(t, game.White, m.Mover())
	require.Equal(t, 1, m.Moves())
	require.Equal(t, game.Empty, m.Board().At(8, 8))

	require.NoError(t, m.Undo())
	require.Equal(t, before, m.Board().Serialize())
	require.Equal(t, game.Black, m.Mover())
}

func TestMatchUndoRevivesFinishedGame(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Go, 9)
	require.NoError(t, m.Pass())
	require.NoError(t, m.Pass())
	require.True(t, m.Status().Over())

	require.NoError(t, m.Undo())
	require.Equal(t, game.InProgress, m.Status())
	require.Equal(t, game.White, m.Mover())
	require.Equal(t, 1, m.Passes())
}

func TestMatchUndoRestoresCaptures(t *testing.T) {
	board, err := game.NewBoard(9)
	require.NoError(t, err)
	board.Set(4, 4, game.White)
	board.Set(3, 4, game.Black)
	board.Set(5, 4, game.Black)
	board.Set(4, 3, game.Black)
	rec := store.Record{Variant: game.Go, Mover: game.Black, Board: board.Serialize()}

	m, err := Restore(rec, player.NewHuman("b", game.Black), player.NewHuman("w", game.White))
	require.NoError(t, err)

	ok, _ := m.Play(game.Move{Row: 4, Col: 5})
	require.True(t, ok)
	require.Equal(t, game.Empty, m.Board().At(4, 4))

	require.NoError(t, m.Undo())
	require.Equal(t, game.White, m.Board().At(4, 4), "captured stone back after undo")
	require.Equal(t, game.Black, m.Mover())
}

func TestMatchTickWaitsForHuman(t *testing.T) {
	m, black, _ := newHumanMatch(t, game.Gomoku, 15)
	require.False(t, m.Tick(), "nothing queued")

	black.Submit(game.Move{Row: 7, Col: 7})
	require.True(t, m.Tick())
	require.Equal(t, game.Black, m.Board().At(7, 7))
	require.Equal(t, game.White, m.Mover())
}

func TestMatchTickDrivesAI(t *testing.T) {
	black := player.New(player.Random, "bot-b", game.Black, player.Config{Seed: 5})
	white := player.New(player.Random, "bot-w", game.White, player.Config{Seed: 6})
	m, err := NewMatch(Settings{Variant: game.Reversi}, black, white)
	require.NoError(t, err)

	require.True(t, m.Tick())
	require.Equal(t, 1, m.Moves())
	require.Equal(t, game.White, m.Mover())

	for i := 0; i < 200 && !m.Status().Over(); i++ {
		m.Tick()
	}
	require.True(t, m.Status().Over(), "random reversi game terminates")
}

func TestMatchForcedPass(t *testing.T) {
	// white owns one cornered stone and has no bracket anywhere
	board, err := game.NewBoard(8)
	require.NoError(t, err)
	board.Set(0, 0, game.White)
	board.Set(5, 5, game.Black)
	board.Set(5, 6, game.Black)
	rec := store.Record{Variant: game.Reversi, Mover: game.White, Board: board.Serialize()}

	m, err := Restore(rec, player.NewHuman("b", game.Black), player.NewHuman("w", game.White))
	require.NoError(t, err)

	require.True(t, m.ForcedPass())
	require.Equal(t, game.Black, m.Mover())
	require.Equal(t, 1, m.Passes())

	// black is stuck too; the second forced pass settles by count
	require.True(t, m.ForcedPass())
	require.Equal(t, game.BlackWin, m.Status())
}

func TestMatchForkIsolated(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Reversi, 8)
	board, rules := m.Fork()
	rules.Apply(game.Move{Row: 2, Col: 3}, game.Black)
	require.Equal(t, game.Black, board.At(2, 3))
	require.Equal(t, game.Empty, m.Board().At(2, 3), "live match untouched")
}

func TestMatchSnapshotRestoreRoundTrip(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Reversi, 8)
	ok, reason := m.Play(game.Move{Row: 2, Col: 3})
	require.True(t, ok, reason)
	ok, reason = m.Play(game.Move{Row: 2, Col: 2})
	require.True(t, ok, reason)

	restored, err := Restore(m.Snapshot(), player.NewHuman("b", game.Black), player.NewHuman("w", game.White))
	require.NoError(t, err)
	require.Equal(t, m.Board().Serialize(), restored.Board().Serialize())
	require.Equal(t, m.Mover(), restored.Mover())
	require.Equal(t, m.Moves(), restored.Moves())

	next := game.Move{Row: 3, Col: 2}
	okLive, _ := m.Play(next)
	okRestored, _ := restored.Play(next)
	require.Equal(t, okLive, okRestored)
	require.Equal(t, m.Board().Serialize(), restored.Board().Serialize())
}

func TestRestoreRejectsCorruptRecords(t *testing.T) {
	black := player.NewHuman("b", game.Black)
	white := player.NewHuman("w", game.White)
	valid, err := game.NewBoard(8)
	require.NoError(t, err)

	cases := map[string]store.Record{
		"bad variant":     {Variant: game.Variant(9), Mover: game.Black, Board: valid.Serialize()},
		"bad mover":       {Variant: game.Reversi, Mover: game.Empty, Board: valid.Serialize()},
		"bad board":       {Variant: game.Reversi, Mover: game.Black, Board: "8 1 2 3"},
		"oob history":     {Variant: game.Reversi, Mover: game.Black, Board: valid.Serialize(), History: []game.Move{{Row: 9, Col: 0}}},
		"negative passes": {Variant: game.Reversi, Mover: game.Black, Board: valid.Serialize(), Passes: -1},
	}
	for name, rec := range cases {
		_, err := Restore(rec, black, white)
		require.Error(t, err, name)
	}
}

func TestReplayReproducesGame(t *testing.T) {
	m, _, _ := newHumanMatch(t, game.Reversi, 8)
	moves := []game.Move{{Row: 2, Col: 3}, {Row: 2, Col: 2}, {Row: 3, Col: 2}}
	for _, mv := range moves {
		ok, reason := m.Play(mv)
		require.True(t, ok, reason)
	}

	replay, err := NewReplay(m.Snapshot())
	require.NoError(t, err)
	require.Equal(t, game.Reversi, replay.Variant())

	for i := 0; ; i++ {
		mv, ok := replay.Step()
		if !ok {
			require.Equal(t, len(moves), i)
			break
		}
		require.Equal(t, moves[i], mv)
	}
	done, total := replay.Progress()
	require.Equal(t, total, done)
	require.Equal(t, m.Board().Serialize(), replay.Board().Serialize())
	require.Equal(t, m.Mover(), replay.Mover())
}
