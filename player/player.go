package player

import (
	"fmt"
	"time"

	"sente/game"
	"sente/searcher"
)

// Kind distinguishes the available move selectors.
type Kind uint8

const (
	Human Kind = iota
	Random
	Greedy
	Search
)

func (k Kind) String() string {
	switch k {
	case Random:
		return "random"
	case Greedy:
		return "greedy"
	case Search:
		return "mcts"
	default:
		return "human"
	}
}

// ParseKind maps a selector name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "human":
		return Human, nil
	case "random":
		return Random, nil
	case "greedy":
		return Greedy, nil
	case "mcts", "search":
		return Search, nil
	default:
		return 0, fmt.Errorf("unknown player kind %q", s)
	}
}

// Agent produces moves for one color. ChooseMove returns the pass sentinel
// when the agent has nothing to play.
type Agent interface {
	Name() string
	Color() game.Cell
	Kind() Kind
	ChooseMove(board *game.Board, rules game.Rules) game.Move
}

// info is the immutable descriptor embedded in every agent.
type info struct {
	name  string
	color game.Cell
	kind  Kind
}

func (i info) Name() string     { return i.name }
func (i info) Color() game.Cell { return i.color }
func (i info) Kind() Kind       { return i.kind }

// Config carries the tunables a seat needs beyond its kind. The zero value
// picks time-based seeding and the searcher defaults.
type Config struct {
	Seed     uint64
	Duration time.Duration // search budget per move
	Episodes int           // fixed-episode override for the searcher
	Cutoff   int           // rollout ply bound
}

// New builds an agent of the given kind.
func New(kind Kind, name string, color game.Cell, cfg Config) Agent {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	switch kind {
	case Random:
		return NewRandom(name, color, seed)
	case Greedy:
		return NewGreedy(name, color, seed)
	case Search:
		options := []searcher.Option{searcher.WithSeed(seed)}
		if cfg.Duration > 0 {
			options = append(options, searcher.WithDuration(cfg.Duration))
		}
		if cfg.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(cfg.Episodes))
		}
		if cfg.Cutoff > 0 {
			options = append(options, searcher.WithCutoff(cfg.Cutoff))
		}
		return NewSearch(name, color, options...)
	default:
		return NewHuman(name, color)
	}
}
