package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"sente/game"
	"sente/player"
	"sente/store"
)

// Errors surfaced to input boundaries. Illegal placements are not errors:
// Play reports them with a false flag and a reason.
var (
	ErrGameOver      = errors.New("game is over")
	ErrNoPass        = errors.New("variant has no voluntary pass")
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Settings fixes a match before the first move.
type Settings struct {
	Variant game.Variant
	Size    int // 0 picks the variant's customary size
}

// snapshot is one undo step: the complete pre-action state.
type snapshot struct {
	board   *game.Board
	mover   game.Cell
	passes  int
	history []game.Move
}

// Match drives one game between two agents: it validates and applies
// moves, forces passes for stuck sides, detects termination and keeps the
// undo trail. A Match is not self-locking; concurrent boundaries wrap it
// in their own mutex.
type Match struct {
	variant game.Variant
	board   *game.Board
	rules   game.Rules
	mover   game.Cell
	passes  int
	history []game.Move
	undos   []snapshot
	status  game.Status
	message string
	black   player.Agent
	white   player.Agent
}

func NewMatch(settings Settings, black, white player.Agent) (*Match, error) {
	if !settings.Variant.Valid() {
		return nil, fmt.Errorf("new match: unknown variant %d", settings.Variant)
	}
	size := settings.Size
	if size == 0 {
		size = settings.Variant.DefaultSize()
	}
	board, err := game.NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	rules := game.New(settings.Variant, board)
	rules.Setup()

	m := &Match{
		variant: settings.Variant,
		board:   board,
		rules:   rules,
		mover:   game.Black,
		status:  game.InProgress,
		black:   black,
		white:   white,
	}
	log.Info().Msgf("match started: %s %dx%d, %s vs %s", m.variant, size, size, black.Name(), white.Name())
	return m, nil
}

func (m *Match) Variant() game.Variant { return m.variant }

// Board exposes the live board for rendering; callers must not write to it.
func (m *Match) Board() *game.Board { return m.board }

func (m *Match) Mover() game.Cell    { return m.mover }
func (m *Match) Status() game.Status { return m.status }
func (m *Match) Message() string     { return m.message }
func (m *Match) Passes() int         { return m.passes }

// Moves counts applied actions, passes included.
func (m *Match) Moves() int { return len(m.history) }

func (m *Match) History() []game.Move { return append([]game.Move(nil), m.history...) }

func (m *Match) Scores() (black, white float64) { return m.rules.Score() }

// Agent returns the seat playing color.
func (m *Match) Agent(color game.Cell) player.Agent {
	if color == game.White {
		return m.white
	}
	return m.black
}

// CurrentAgent returns the seat to move.
func (m *Match) CurrentAgent() player.Agent { return m.Agent(m.mover) }

// Fork clones the position for speculative work outside the caller's lock.
func (m *Match) Fork() (*game.Board, game.Rules) {
	board := m.board.Clone()
	return board, m.rules.Clone(board)
}

// Play validates and applies a placement for the side to move. Rejections
// report false plus a reason and leave the turn unchanged; the pass
// sentinel is rerouted through Pass.
func (m *Match) Play(mv game.Move) (bool, string) {
	if m.status.Over() {
		m.message = "game is over"
		return false, m.message
	}
	if mv.IsPass() {
		if err := m.Pass(); err != nil {
			m.message = err.Error()
			return false, m.message
		}
		return true, ""
	}
	if !m.rules.IsLegal(mv, m.mover) {
		m.message = fmt.Sprintf("illegal move %s for %s", mv, m.mover)
		return false, m.message
	}
	m.pushUndo()
	m.rules.Apply(mv, m.mover)
	m.history = append(m.history, mv)
	m.passes = 0
	m.message = ""
	log.Debug().Msgf("%s plays %s", m.mover, mv)
	if status := m.rules.Result(mv); status.Over() {
		m.finish(status)
		return true, ""
	}
	m.mover = game.Opponent(m.mover)
	return true, ""
}

// Pass records a voluntary pass for the side to move. Only the territory
// variant permits one; two consecutive passes end the game by scoring.
func (m *Match) Pass() error {
	if m.status.Over() {
		return ErrGameOver
	}
	if m.variant != game.Go {
		return ErrNoPass
	}
	m.pass()
	return nil
}

// ForcedPass passes automatically when a pass-capable variant leaves the
// side to move without a placement. It reports whether a pass happened.
func (m *Match) ForcedPass() bool {
	if m.status.Over() || !m.rules.SupportsPass() {
		return false
	}
	if m.rules.HasLegalMove(m.mover) {
		return false
	}
	log.Info().Msgf("%s has no legal move, forced pass", m.mover)
	m.pass()
	return true
}

func (m *Match) pass() {
	m.pushUndo()
	m.passes++
	m.history = append(m.history, game.Pass)
	m.message = ""
	log.Debug().Msgf("%s passes", m.mover)
	m.mover = game.Opponent(m.mover)
	if m.passes >= 2 {
		m.finishByScore()
	}
}

// PlayPending plays the queued move of a human side to move, if any.
func (m *Match) PlayPending() bool {
	if m.status.Over() {
		return false
	}
	human, ok := m.CurrentAgent().(*player.HumanAgent)
	if !ok {
		return false
	}
	mv, ok := human.TakePending()
	if !ok {
		return false
	}
	applied, _ := m.Play(mv)
	return applied
}

// Tick advances the match by at most one action: a forced pass, a queued
// human move, or one synchronous AI move. It reports whether the position
// changed.
func (m *Match) Tick() bool {
	if m.status.Over() {
		return false
	}
	if m.ForcedPass() {
		return true
	}
	agent := m.CurrentAgent()
	if agent.Kind() == player.Human {
		return m.PlayPending()
	}
	mv := agent.ChooseMove(m.board, m.rules)
	if mv.IsPass() {
		// selectors only pass when stuck, which ForcedPass already covers
		return false
	}
	applied, _ := m.Play(mv)
	return applied
}

// Undo rewinds one action, move or pass, reviving a finished game if
// needed.
func (m *Match) Undo() error {
	if len(m.undos) == 0 {
		return ErrNothingToUndo
	}
	last := m.undos[len(m.undos)-1]
	m.undos = m.undos[:len(m.undos)-1]
	m.board = last.board
	m.rules = m.rules.Clone(m.board)
	m.mover = last.mover
	m.passes = last.passes
	m.history = last.history
	m.status = game.InProgress
	m.message = ""
	return nil
}

// Snapshot captures the match for persistence.
func (m *Match) Snapshot() store.Record {
	return store.Record{
		Variant: m.variant,
		Mover:   m.mover,
		Passes:  m.passes,
		Board:   m.board.Serialize(),
		History: append([]game.Move(nil), m.history...),
	}
}

// Restore rebuilds a playable match from a saved record. The record is
// validated in full before anything is built; a restored match starts
// with an empty undo trail.
func Restore(rec store.Record, black, white player.Agent) (*Match, error) {
	if !rec.Variant.Valid() {
		return nil, fmt.Errorf("restore match: unknown variant %d", rec.Variant)
	}
	if rec.Mover != game.Black && rec.Mover != game.White {
		return nil, fmt.Errorf("restore match: bad mover %d", rec.Mover)
	}
	if rec.Passes < 0 {
		return nil, fmt.Errorf("restore match: bad pass count %d", rec.Passes)
	}
	board, err := game.ParseBoard(rec.Board)
	if err != nil {
		return nil, fmt.Errorf("restore match: %w", err)
	}
	for _, mv := range rec.History {
		if !mv.IsPass() && !board.InBounds(mv.Row, mv.Col) {
			return nil, fmt.Errorf("restore match: move %s out of bounds", mv)
		}
	}
	m := &Match{
		variant: rec.Variant,
		board:   board,
		rules:   game.New(rec.Variant, board),
		mover:   rec.Mover,
		passes:  rec.Passes,
		history: append([]game.Move(nil), rec.History...),
		status:  game.InProgress,
		black:   black,
		white:   white,
	}
	log.Info().Msgf("match restored: %s, %d moves played, %s to move", m.variant, len(m.history), m.mover)
	return m, nil
}

func (m *Match) finish(status game.Status) {
	m.status = status
	black, white := m.rules.Score()
	log.Info().Msgf("match over: %s (black %.2f, white %.2f)", status, black, white)
}

// finishByScore settles a match that ended without a decisive terminal
// state, such as a double pass.
func (m *Match) finishByScore() {
	black, white := m.rules.Score()
	m.finish(game.CompareScores(black, white))
}

func (m *Match) pushUndo() {
	m.undos = append(m.undos, snapshot{
		board:   m.board.Clone(),
		mover:   m.mover,
		passes:  m.passes,
		history: append([]game.Move(nil), m.history...),
	})
}
