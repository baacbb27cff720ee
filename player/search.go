package player

import (
	"sente/game"
	"sente/searcher"
)

// SearchAgent delegates move selection to the Monte-Carlo tree searcher.
type SearchAgent struct {
	info
	mcts *searcher.MCTS
}

func NewSearch(name string, color game.Cell, options ...searcher.Option) *SearchAgent {
	return &SearchAgent{
		info: info{name: name, color: color, kind: Search},
		mcts: searcher.NewMCTS(options...),
	}
}

func (a *SearchAgent) ChooseMove(board *game.Board, rules game.Rules) game.Move {
	return a.mcts.FindMove(board, rules, a.color)
}

// Metric exposes the statistics of the agent's most recent search.
func (a *SearchAgent) Metric() searcher.SearchMetric { return a.mcts.Metric() }
