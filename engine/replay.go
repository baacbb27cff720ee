package engine

import (
	"fmt"

	"sente/game"
	"sente/store"
)

// Replay steps through a saved game from its initial position, one
// recorded action at a time.
type Replay struct {
	variant game.Variant
	board   *game.Board
	rules   game.Rules
	mover   game.Cell
	moves   []game.Move
	step    int
}

// NewReplay validates rec and rebuilds the starting position of its game.
func NewReplay(rec store.Record) (*Replay, error) {
	if !rec.Variant.Valid() {
		return nil, fmt.Errorf("replay: unknown variant %d", rec.Variant)
	}
	final, err := game.ParseBoard(rec.Board)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	board, err := game.NewBoard(final.Size())
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	rules := game.New(rec.Variant, board)
	rules.Setup()
	return &Replay{
		variant: rec.Variant,
		board:   board,
		rules:   rules,
		mover:   game.Black,
		moves:   append([]game.Move(nil), rec.History...),
	}, nil
}

// Step applies the next recorded action, pass or placement. It reports
// false once the record is exhausted.
func (r *Replay) Step() (game.Move, bool) {
	if r.step >= len(r.moves) {
		return game.Pass, false
	}
	mv := r.moves[r.step]
	r.rules.Apply(mv, r.mover)
	r.mover = game.Opponent(r.mover)
	r.step++
	return mv, true
}

func (r *Replay) Variant() game.Variant { return r.variant }

func (r *Replay) Board() *game.Board { return r.board }

func (r *Replay) Mover() game.Cell { return r.mover }

// Progress reports applied and total step counts.
func (r *Replay) Progress() (done, total int) { return r.step, len(r.moves) }
