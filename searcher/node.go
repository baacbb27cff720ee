package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"sente/game"
)

// node is one position in the search tree, reached by mover playing move
// from the parent position. untried holds the opponent replies not yet
// expanded into children.
type node struct {
	parent   *node
	children []*node
	move     game.Move
	mover    game.Cell
	visits   int
	rewards  float64
	untried  []game.Move
}

func newNode(parent *node, move game.Move, mover game.Cell, rules game.Rules) *node {
	return &node{
		parent:  parent,
		move:    move,
		mover:   mover,
		untried: rules.LegalMoves(game.Opponent(mover)),
	}
}

// expandable reports whether unexplored replies remain.
func (n *node) expandable() bool { return len(n.untried) > 0 }

// takeUntried removes and returns one untried reply uniformly at random.
func (n *node) takeUntried(rng *rand.Rand) game.Move {
	i := rng.Intn(len(n.untried))
	move := n.untried[i]
	n.untried[i] = n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]
	return move
}

// bestChild returns the child maximizing UCT with exploration weight c.
func (n *node) bestChild(c float64) *node {
	lnN := math.Log(float64(n.visits))
	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := ucb1(child.rewards, child.visits, c, lnN)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

func ucb1(rewards float64, visits int, c, lnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/float64(visits) + c*math.Sqrt(lnN/float64(visits))
}

// update banks one playout outcome, oriented to this node's mover: a Black
// mover keeps the Black-perspective outcome as-is, a White mover its
// complement. Sibling comparisons then rank moves from the right side no
// matter whose turn a tree level represents.
func (n *node) update(outcome float64) {
	n.visits++
	if n.mover == game.Black {
		n.rewards += outcome
	} else {
		n.rewards += 1 - outcome
	}
}

// mostVisited returns the move of the most visited child: robust-child
// selection by visit count, not average reward.
func (n *node) mostVisited() (game.Move, bool) {
	bestVisits := -1
	move := game.Pass
	for _, child := range n.children {
		if child.visits > bestVisits {
			bestVisits = child.visits
			move = child.move
		}
	}
	return move, bestVisits >= 0
}
