package searcher

import (
	"time"

	"golang.org/x/exp/rand"

	"sente/game"
)

// Search defaults: a two second budget per move, rollouts cut off after 60
// plies, exploration weight near sqrt(2).
const (
	DefaultDuration    = 2000 * time.Millisecond
	DefaultCutoff      = 60
	DefaultExploration = 1.414
)

type Option func(mcts *MCTS)

// MCTS chooses moves by Monte-Carlo tree search over cloned rule engines.
// The loop runs on a single goroutine and polls the wall clock between
// episodes, so an in-flight playout always completes. One instance serves
// a whole match; every FindMove builds and discards its own tree.
type MCTS struct {
	duration    time.Duration
	episodes    int
	cutoff      int
	exploration float64
	rng         *rand.Rand
	metrics     Collector
	lastMetric  SearchMetric
}

// WithDuration sets the wall-clock budget per move.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes runs a fixed number of episodes instead of a wall-clock
// budget; combined with WithSeed the whole search is reproducible.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff bounds rollout length in plies.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

// WithExploration sets the UCT exploration weight.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithSeed fixes the searcher's private randomness.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMetrics records per-search statistics, retrievable via Metric.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:    DefaultDuration,
		cutoff:      DefaultCutoff,
		exploration: DefaultExploration,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:     NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindMove searches for the best move available to color. The live board
// is cloned once up front and again per episode; the caller's state is
// never touched. It returns the pass sentinel when color has no legal
// move at the root.
func (m *MCTS) FindMove(board *game.Board, rules game.Rules, color game.Cell) game.Move {
	rootBoard := board.Clone()
	rootRules := rules.Clone(rootBoard)
	root := newNode(nil, game.Pass, game.Opponent(color), rootRules)

	m.metrics.Start(m.cutoff)
	defer func() { m.lastMetric = m.metrics.Complete() }()

	if len(root.untried) == 0 {
		return game.Pass
	}

	if m.episodes > 0 {
		for i := 0; i < m.episodes; i++ {
			m.episode(root, rootBoard, rootRules, color)
		}
	} else {
		start := time.Now()
		for time.Since(start) < m.duration {
			m.episode(root, rootBoard, rootRules, color)
		}
	}

	move, ok := root.mostVisited()
	if !ok {
		return game.Pass
	}
	return move
}

// Metric returns the statistics of the most recent FindMove.
func (m *MCTS) Metric() SearchMetric { return m.lastMetric }

// episode runs one selection, expansion, rollout and backup pass on a
// private copy of the root position.
func (m *MCTS) episode(root *node, rootBoard *game.Board, rootRules game.Rules, color game.Cell) {
	board := rootBoard.Clone()
	rules := rootRules.Clone(board)

	nd, mover := m.selectExpand(root, rules, color)
	outcome := m.rollout(rules, nd.move, mover)
	backup(nd, outcome)
	m.metrics.AddEpisode()
}

// selectExpand descends through fully expanded nodes by UCT, replaying
// each chosen move on rules, then expands one untried reply if the leaf
// has any. It returns the node to evaluate and the color to move from its
// position.
func (m *MCTS) selectExpand(root *node, rules game.Rules, color game.Cell) (*node, game.Cell) {
	nd := root
	mover := color
	for !nd.expandable() && len(nd.children) > 0 {
		nd = nd.bestChild(m.exploration)
		rules.Apply(nd.move, mover)
		mover = game.Opponent(mover)
	}
	if nd.expandable() {
		move := nd.takeUntried(m.rng)
		rules.Apply(move, mover)
		child := newNode(nd, move, mover, rules)
		nd.children = append(nd.children, child)
		nd = child
		mover = game.Opponent(mover)
	}
	return nd, mover
}

// rollout plays uniformly random legal moves until a decisive result, a
// mutual stall, or the ply cutoff. A stuck side passes without consuming
// a ply; non-decisive endings are settled by score.
func (m *MCTS) rollout(rules game.Rules, last game.Move, mover game.Cell) float64 {
	status := rules.Result(last)
	for depth := 0; depth < m.cutoff && status == game.InProgress; {
		moves := rules.LegalMoves(mover)
		if len(moves) == 0 {
			if !rules.HasLegalMove(game.Opponent(mover)) {
				break
			}
			mover = game.Opponent(mover)
			continue
		}
		// Follow a random rollout policy
		move := moves[m.rng.Intn(len(moves))]
		rules.Apply(move, mover)
		status = rules.Result(move)
		mover = game.Opponent(mover)
		depth++
	}

	if status == game.BlackWin || status == game.WhiteWin {
		m.metrics.AddFullPlayout()
	} else {
		black, white := rules.Score()
		status = game.CompareScores(black, white)
	}

	switch status {
	case game.BlackWin:
		return 1.0
	case game.WhiteWin:
		return 0.0
	default:
		return 0.5
	}
}

func backup(nd *node, outcome float64) {
	for ; nd != nil; nd = nd.parent {
		nd.update(outcome)
	}
}
