package player

import (
	"golang.org/x/exp/rand"

	"sente/game"
)

// RandomAgent plays a uniformly random legal move.
type RandomAgent struct {
	info
	rng *rand.Rand
}

func NewRandom(name string, color game.Cell, seed uint64) *RandomAgent {
	return &RandomAgent{
		info: info{name: name, color: color, kind: Random},
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (a *RandomAgent) ChooseMove(board *game.Board, rules game.Rules) game.Move {
	moves := rules.LegalMoves(a.color)
	if len(moves) == 0 {
		return game.Pass
	}
	return moves[a.rng.Intn(len(moves))]
}
