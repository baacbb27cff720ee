package player

import (
	"sync"

	"sente/game"
)

// HumanAgent is a mailbox for moves arriving from an input boundary such
// as a CLI prompt or an HTTP handler. The turn driver pulls the pending
// move on the human's turn.
type HumanAgent struct {
	info
	mu      sync.Mutex
	pending *game.Move
}

func NewHuman(name string, color game.Cell) *HumanAgent {
	return &HumanAgent{info: info{name: name, color: color, kind: Human}}
}

// Submit queues m as the next move to play, replacing any unplayed one.
func (a *HumanAgent) Submit(m game.Move) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = &m
}

// TakePending pops the queued move, if any.
func (a *HumanAgent) TakePending() (game.Move, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending == nil {
		return game.Pass, false
	}
	m := *a.pending
	a.pending = nil
	return m, true
}

// ChooseMove drains the mailbox; with nothing queued it reports a pass.
// Drivers normally gate on TakePending instead of calling this.
func (a *HumanAgent) ChooseMove(board *game.Board, rules game.Rules) game.Move {
	if m, ok := a.TakePending(); ok {
		return m
	}
	return game.Pass
}
