package player

import (
	"math"

	"golang.org/x/exp/rand"

	"sente/game"
)

// positionWeights values the cells of a standard 8x8 flip-capture board:
// corners dominate, the cells beside them are liabilities, edges are
// mildly good and the interior mildly bad.
var positionWeights = [8][8]int{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// offTableScore applies to coordinates beyond the weight table on larger
// boards.
const offTableScore = 1

// GreedyAgent maximizes a static positional weight plus a small random
// jitter that breaks ties between equally valued cells.
type GreedyAgent struct {
	info
	rng *rand.Rand
}

func NewGreedy(name string, color game.Cell, seed uint64) *GreedyAgent {
	return &GreedyAgent{
		info: info{name: name, color: color, kind: Greedy},
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (a *GreedyAgent) ChooseMove(board *game.Board, rules game.Rules) game.Move {
	moves := rules.LegalMoves(a.color)
	if len(moves) == 0 {
		return game.Pass
	}
	best := moves[0]
	bestScore := math.MinInt
	for _, m := range moves {
		score := offTableScore
		if m.Row < len(positionWeights) && m.Col < len(positionWeights[0]) {
			score = positionWeights[m.Row][m.Col]
		}
		score += a.rng.Intn(5)
		if score > bestScore {
			bestScore = score
			best = m
		}
	}
	return best
}
